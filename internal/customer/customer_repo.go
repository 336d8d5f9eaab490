package customer

import (
	"context"
	"database/sql"
	"errors"

	"go-salescrm/internal/commission"
	"go-salescrm/internal/orgscope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, customer *Customer) error
	FindAll(ctx context.Context, scope orgscope.Scope) ([]Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error
	CreateSaleLog(ctx context.Context, log *SaleLog) error
	DealContext(ctx context.Context, customerID uuid.UUID) (*commission.DealContext, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
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

func (r *repository) Create(ctx context.Context, customer *Customer) error {
	return r.conn(ctx).Create(customer).Error
}

func (r *repository) FindAll(ctx context.Context, scope orgscope.Scope) ([]Customer, error) {
	var customers []Customer
	err := r.conn(ctx).
		Preload("Channel").
		Preload("SaleLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_logs.occurred_at DESC")
		}).
		Scopes(orgscope.Filter(scope, "customers.owner_id")).
		Order("customers.created_at DESC").
		Find(&customers).Error
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var customer Customer
	err := r.conn(ctx).
		Preload("Channel").
		Preload("SaleLogs", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_logs.occurred_at DESC")
		}).
		First(&customer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) Update(ctx context.Context, customer *Customer) error {
	return r.conn(ctx).Save(customer).Error
}

func (r *repository) CreateSaleLog(ctx context.Context, log *SaleLog) error {
	return r.conn(ctx).Create(log).Error
}

// DealContext assembles the commission engine's view of a customer: the
// channel plus the full funnel history ordered newest first.
func (r *repository) DealContext(ctx context.Context, customerID uuid.UUID) (*commission.DealContext, error) {
	customer, err := r.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	logs := make([]commission.StageLog, 0, len(customer.SaleLogs))
	for _, sl := range customer.SaleLogs {
		logs = append(logs, commission.StageLog{
			ID:         sl.ID,
			Stage:      sl.Stage,
			ActorID:    sl.ActorID,
			OccurredAt: sl.OccurredAt,
		})
	}

	return &commission.DealContext{
		CustomerID: customer.ID,
		Channel:    customer.Channel,
		Logs:       logs,
	}, nil
}
