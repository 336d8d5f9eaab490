package salestarget

import (
	"context"
	"time"

	"go-salescrm/internal/orgscope"
	"go-salescrm/internal/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListedTarget joins the payee name onto the target row.
type ListedTarget struct {
	SalesTarget
	UserName string
}

// TeamMember is the slim user projection the stats query starts from.
type TeamMember struct {
	ID   uuid.UUID
	Name string
	Role string
}

// StageCount is one (actor, stage) aggregation bucket for a month.
type StageCount struct {
	ActorID    uuid.UUID
	Stage      string
	Count      int64
	DealAmount float64
}

type Repository interface {
	Upsert(ctx context.Context, target *SalesTarget) error
	FindAll(ctx context.Context, scope orgscope.Scope) ([]ListedTarget, error)
	FindByMonth(ctx context.Context, userIDs []uuid.UUID, month string) ([]SalesTarget, error)
	ScopedMembers(ctx context.Context, scope orgscope.Scope) ([]TeamMember, error)
	LeadCounts(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int64, error)
	StageCounts(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]StageCount, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, target *SalesTarget) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).
		Create(target).Error
}

func (r *repository) FindAll(ctx context.Context, scope orgscope.Scope) ([]ListedTarget, error) {
	var targets []ListedTarget
	err := r.db.WithContext(ctx).
		Table("sales_targets").
		Select("sales_targets.*, users.name AS user_name").
		Joins("LEFT JOIN users ON users.id = sales_targets.user_id").
		Scopes(orgscope.Filter(scope, "sales_targets.user_id")).
		Order("sales_targets.month DESC").
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *repository) FindByMonth(ctx context.Context, userIDs []uuid.UUID, month string) ([]SalesTarget, error) {
	var targets []SalesTarget
	err := r.db.WithContext(ctx).
		Where("user_id IN ? AND month = ?", userIDs, month).
		Find(&targets).Error
	if err != nil {
		return nil, err
	}
	return targets, nil
}

func (r *repository) ScopedMembers(ctx context.Context, scope orgscope.Scope) ([]TeamMember, error) {
	var members []TeamMember
	err := r.db.WithContext(ctx).
		Model(&user.User{}).
		Select("id, name, role").
		Where("status <> ?", user.StatusTerminated).
		Scopes(orgscope.Filter(scope, "users.id")).
		Order("name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repository) LeadCounts(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int64, error) {
	type row struct {
		OwnerID uuid.UUID
		Count   int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("customers").
		Select("owner_id, COUNT(*) AS count").
		Where("owner_id IN ? AND created_at BETWEEN ? AND ?", userIDs, from, to).
		Group("owner_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, rw := range rows {
		counts[rw.OwnerID] = rw.Count
	}
	return counts, nil
}

func (r *repository) StageCounts(ctx context.Context, userIDs []uuid.UUID, from, to time.Time) ([]StageCount, error) {
	var rows []StageCount
	err := r.db.WithContext(ctx).
		Table("sale_logs").
		Select("actor_id, stage, COUNT(*) AS count, COALESCE(SUM(deal_amount), 0) AS deal_amount").
		Where("actor_id IN ? AND occurred_at BETWEEN ? AND ?", userIDs, from, to).
		Group("actor_id, stage").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
