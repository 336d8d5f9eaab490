package channel

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=channel_repo.go -destination=mock/channel_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, ch *Channel) error
	FindAll(ctx context.Context) ([]Channel, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Channel, error)
	Update(ctx context.Context, ch *Channel) error
	Delete(ctx context.Context, id uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, ch *Channel) error {
	return r.db.WithContext(ctx).Create(ch).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&channels).Error
	return channels, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Channel, error) {
	var ch Channel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ch).Error
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *repository) Update(ctx context.Context, ch *Channel) error {
	return r.db.WithContext(ctx).Save(ch).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Channel{}).Error
}
