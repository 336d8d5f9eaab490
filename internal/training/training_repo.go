package training

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerInfo is the slice of the customer row list views need.
type CustomerInfo struct {
	Name       string
	CourseName string
}

type Repository interface {
	Create(ctx context.Context, t *Training) error
	FindAll(ctx context.Context, assigneeID *uuid.UUID) ([]Training, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Training, error)
	Update(ctx context.Context, t *Training) error
	CreateLog(ctx context.Context, log *TrainingLog) error
	FindLogByID(ctx context.Context, id uuid.UUID) (*TrainingLog, error)
	UpdateLog(ctx context.Context, log *TrainingLog) error
	CustomerInfoByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]CustomerInfo, error)
	UserNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Training) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAll(ctx context.Context, assigneeID *uuid.UUID) ([]Training, error) {
	q := r.db.WithContext(ctx).
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("training_logs.submitted_at DESC")
		}).
		Order("trainings.updated_at DESC")

	if assigneeID != nil {
		q = q.Where("assignee_id = ?", *assigneeID)
	}

	var trainings []Training
	if err := q.Find(&trainings).Error; err != nil {
		return nil, err
	}
	return trainings, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Training, error) {
	var t Training
	err := r.db.WithContext(ctx).
		Preload("Logs", func(db *gorm.DB) *gorm.DB {
			return db.Order("training_logs.submitted_at DESC")
		}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Training) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) CreateLog(ctx context.Context, log *TrainingLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) FindLogByID(ctx context.Context, id uuid.UUID) (*TrainingLog, error) {
	var log TrainingLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *repository) UpdateLog(ctx context.Context, log *TrainingLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

func (r *repository) CustomerInfoByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]CustomerInfo, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]CustomerInfo{}, nil
	}

	type row struct {
		ID         uuid.UUID
		Name       string
		CourseName string
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("customers").
		Select("id, name, course_name").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]CustomerInfo, len(rows))
	for _, rw := range rows {
		out[rw.ID] = CustomerInfo{Name: rw.Name, CourseName: rw.CourseName}
	}
	return out, nil
}

func (r *repository) UserNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	type row struct {
		ID   uuid.UUID
		Name string
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("users").
		Select("id, name").
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]string, len(rows))
	for _, rw := range rows {
		out[rw.ID] = rw.Name
	}
	return out, nil
}
