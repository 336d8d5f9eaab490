package commission

import (
	"context"
	"database/sql"

	commissionerrors "go-salescrm/internal/commission/errors"
	"go-salescrm/internal/orgscope"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the commission back office: scoped listing plus the
// PENDING -> APPROVED -> PAID lifecycle.
type Service interface {
	List(ctx context.Context, actor orgscope.Actor) ([]CommissionResponse, error)
	UpdateAmount(ctx context.Context, id uuid.UUID, req UpdateCommissionRequest) (*CommissionResponse, error)
	Approve(ctx context.Context, id uuid.UUID) (*CommissionResponse, error)
	Pay(ctx context.Context, id uuid.UUID) (*CommissionResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver orgscope.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver orgscope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("commission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("commission.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

func (s *service) List(ctx context.Context, actor orgscope.Actor) ([]CommissionResponse, error) {
	scope, err := s.resolver.ResolveScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		return nil, mapCommissionError(err)
	}

	out := make([]CommissionResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toCommissionResponse(row))
	}
	return out, nil
}

// UpdateAmount adjusts a payout before approval. APPROVED and PAID rows are
// frozen.
func (s *service) UpdateAmount(ctx context.Context, id uuid.UUID, req UpdateCommissionRequest) (*CommissionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)

	row, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCommissionError(err)
	}
	if row.Status != StatusPending {
		return nil, commissionerrors.ErrNotEditable
	}

	row.Commission = decimal.NewFromFloat(req.Commission).Round(2)
	if err := repo.Update(ctx, row); err != nil {
		return nil, mapCommissionError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("commission amount updated",
		zap.String("commission_id", id.String()),
		zap.String("commission", row.Commission.String()),
	)

	resp := toCommissionResponse(ListedCommission{Commission: *row})
	return &resp, nil
}

func (s *service) Approve(ctx context.Context, id uuid.UUID) (*CommissionResponse, error) {
	return s.transition(ctx, id, StatusPending, StatusApproved)
}

func (s *service) Pay(ctx context.Context, id uuid.UUID) (*CommissionResponse, error) {
	return s.transition(ctx, id, StatusApproved, StatusPaid)
}

func (s *service) transition(ctx context.Context, id uuid.UUID, from, to string) (*CommissionResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	repo := s.repo.WithTx(tx)

	row, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapCommissionError(err)
	}
	if row.Status != from {
		return nil, commissionerrors.ErrInvalidStatusTransition
	}

	row.Status = to
	if err := repo.Update(ctx, row); err != nil {
		return nil, mapCommissionError(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("commission status changed",
		zap.String("commission_id", id.String()),
		zap.String("from", from),
		zap.String("to", to),
	)

	resp := toCommissionResponse(ListedCommission{Commission: *row})
	return &resp, nil
}
