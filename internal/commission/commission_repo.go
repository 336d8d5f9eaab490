package commission

import (
	"context"
	"database/sql"

	"go-salescrm/internal/orgscope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListedCommission is a commission row joined with payee and customer names
// for the back-office list view.
type ListedCommission struct {
	Commission
	UserName     string
	CustomerName string
}

//go:generate mockgen -source=commission_repo.go -destination=mock/commission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, rows []Commission) error
	FindAll(ctx context.Context, scope orgscope.Scope) ([]ListedCommission, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Commission, error)
	ExistsForSaleLog(ctx context.Context, saleLogID uuid.UUID) (bool, error)
	Update(ctx context.Context, row *Commission) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

// conn returns the gorm handle every statement goes through. A repository
// derived via WithTx swaps the session's pool for the transaction, so its
// writes commit or roll back with the caller's tx.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	session := r.db.Session(&gorm.Session{Context: ctx, NewDB: true})
	session.Statement.ConnPool = r.tx
	return session
}

// CreateBatch inserts a full deal batch in one statement.
func (r *repository) CreateBatch(ctx context.Context, rows []Commission) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&rows).Error
}

func (r *repository) FindAll(ctx context.Context, scope orgscope.Scope) ([]ListedCommission, error) {
	var rows []ListedCommission
	err := r.conn(ctx).
		Model(&Commission{}).
		Select("commissions.*, users.name AS user_name, customers.name AS customer_name").
		Joins("LEFT JOIN users ON users.id = commissions.user_id").
		Joins("LEFT JOIN customers ON customers.id = commissions.customer_id").
		Scopes(orgscope.Filter(scope, "commissions.user_id")).
		Order("commissions.created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Commission, error) {
	var row Commission
	err := r.conn(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ExistsForSaleLog(ctx context.Context, saleLogID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Commission{}).
		Where("sale_log_id = ?", saleLogID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, row *Commission) error {
	return r.conn(ctx).Save(row).Error
}
