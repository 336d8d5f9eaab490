package salestarget

import (
	"context"
	"time"

	"go-salescrm/internal/customer"
	"go-salescrm/internal/orgscope"
	"go-salescrm/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Service interface {
	Upsert(ctx context.Context, req UpsertTargetRequest) (TargetResponse, error)
	List(ctx context.Context, actor orgscope.Actor) ([]TargetResponse, error)
	TeamStats(ctx context.Context, actor orgscope.Actor, month string) ([]TeamStatsRow, error)
}

type service struct {
	repo     Repository
	resolver orgscope.Resolver
	logger   *zap.Logger
}

func NewService(repo Repository, resolver orgscope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("salestarget.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salestarget.service")
	}
	return &service{repo: repo, resolver: resolver, logger: l}
}

func (s *service) Upsert(ctx context.Context, req UpsertTargetRequest) (TargetResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return TargetResponse{}, apperror.InvalidField("userId")
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return TargetResponse{}, apperror.InvalidField("month")
	}

	target := &SalesTarget{
		ID:     uuid.New(),
		UserID: userID,
		Month:  req.Month,
		Amount: decimal.NewFromFloat(req.Amount).Round(2),
	}

	if err := s.repo.Upsert(ctx, target); err != nil {
		s.logger.Error("upsert sales target failed",
			zap.String("user_id", req.UserID),
			zap.String("month", req.Month),
			zap.Error(err),
		)
		return TargetResponse{}, err
	}

	s.logger.Info("sales target upserted",
		zap.String("user_id", req.UserID),
		zap.String("month", req.Month),
	)

	amount, _ := target.Amount.Float64()
	return TargetResponse{
		ID:     target.ID.String(),
		UserID: target.UserID.String(),
		Month:  target.Month,
		Amount: amount,
	}, nil
}

func (s *service) List(ctx context.Context, actor orgscope.Actor) ([]TargetResponse, error) {
	scope, err := s.resolver.ResolveScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	targets, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		return nil, err
	}

	out := make([]TargetResponse, 0, len(targets))
	for _, t := range targets {
		amount, _ := t.Amount.Float64()
		out = append(out, TargetResponse{
			ID:       t.ID.String(),
			UserID:   t.UserID.String(),
			UserName: t.UserName,
			Month:    t.Month,
			Amount:   amount,
		})
	}
	return out, nil
}

// TeamStats assembles per-member funnel counts, closed amounts, and target
// completion for one month, restricted to the caller's visibility.
func (s *service) TeamStats(ctx context.Context, actor orgscope.Actor, month string) ([]TeamStatsRow, error) {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, apperror.InvalidField("month")
	}
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)

	scope, err := s.resolver.ResolveScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ScopedMembers(ctx, scope)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []TeamStatsRow{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(members))
	for _, m := range members {
		userIDs = append(userIDs, m.ID)
	}

	leadCounts, err := s.repo.LeadCounts(ctx, userIDs, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	stageCounts, err := s.repo.StageCounts(ctx, userIDs, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		chance, call, touch, deal int64
		amount                    float64
	}
	buckets := make(map[uuid.UUID]*bucket, len(members))
	for _, sc := range stageCounts {
		b, ok := buckets[sc.ActorID]
		if !ok {
			b = &bucket{}
			buckets[sc.ActorID] = b
		}
		switch sc.Stage {
		case customer.StageChance:
			b.chance = sc.Count
		case customer.StageCall:
			b.call = sc.Count
		case customer.StageTouch:
			b.touch = sc.Count
		case customer.StageDeal:
			b.deal = sc.Count
			b.amount = sc.DealAmount
		}
	}

	targets, err := s.repo.FindByMonth(ctx, userIDs, month)
	if err != nil {
		return nil, err
	}
	targetAmounts := make(map[uuid.UUID]float64, len(targets))
	for _, t := range targets {
		amount, _ := t.Amount.Float64()
		targetAmounts[t.UserID] = amount
	}

	rows := make([]TeamStatsRow, 0, len(members))
	for _, m := range members {
		b := buckets[m.ID]
		if b == nil {
			b = &bucket{}
		}
		targetAmount := targetAmounts[m.ID]

		completionRate := 0.0
		if targetAmount > 0 {
			completionRate = b.amount / targetAmount * 100
		}

		rows = append(rows, TeamStatsRow{
			ID:             m.ID.String(),
			Name:           m.Name,
			Role:           m.Role,
			LeadCount:      leadCounts[m.ID],
			ChanceCount:    b.chance,
			CallCount:      b.call,
			TouchCount:     b.touch,
			DealCount:      b.deal,
			ContractAmount: b.amount,
			TargetAmount:   targetAmount,
			CompletionRate: completionRate,
		})
	}
	return rows, nil
}
