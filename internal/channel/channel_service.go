package channel

import (
	"context"
	"database/sql"

	"go-salescrm/internal/shared/apperror"

	"github.com/google/uuid"
)

//go:generate mockgen -source=channel_service.go -destination=mock/channel_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateChannelRequest) (ChannelResponse, error)
	GetAll(ctx context.Context) ([]ChannelResponse, error)
	GetByID(ctx context.Context, id string) (ChannelResponse, error)
	Update(ctx context.Context, id string, req UpdateChannelRequest) (ChannelResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateChannelRequest) (ChannelResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ChannelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	ch := &Channel{
		ID:       uuid.New(),
		Name:     req.Name,
		Category: CategoryCompany,
		Status:   StatusActive,
	}
	if req.Category != "" {
		ch.Category = req.Category
	}
	if req.Points != nil {
		ch.Points = *req.Points
	}
	if req.Cost != nil {
		ch.Cost = *req.Cost
	}
	if req.IsActive != nil && !*req.IsActive {
		ch.Status = StatusInactive
	}

	if err := qtx.Create(ctx, ch); err != nil {
		return ChannelResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ChannelResponse{}, err
	}

	return mapToResponse(*ch), nil
}

func (s *service) GetAll(ctx context.Context) ([]ChannelResponse, error) {
	channels, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(channels), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ChannelResponse, error) {
	chID, err := uuid.Parse(id)
	if err != nil {
		return ChannelResponse{}, apperror.ErrNotFound
	}

	ch, err := s.repo.FindByID(ctx, chID)
	if err != nil {
		return ChannelResponse{}, err
	}

	return mapToResponse(*ch), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateChannelRequest) (ChannelResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ChannelResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	chID, err := uuid.Parse(id)
	if err != nil {
		return ChannelResponse{}, apperror.ErrNotFound
	}

	ch, err := qtx.FindByID(ctx, chID)
	if err != nil {
		return ChannelResponse{}, err
	}

	if req.Name != nil {
		ch.Name = *req.Name
	}
	if req.Category != nil {
		ch.Category = *req.Category
	}
	if req.Points != nil {
		ch.Points = *req.Points
	}
	if req.Cost != nil {
		ch.Cost = *req.Cost
	}
	if req.IsActive != nil {
		if *req.IsActive {
			ch.Status = StatusActive
		} else {
			ch.Status = StatusInactive
		}
	}

	if err := qtx.Update(ctx, ch); err != nil {
		return ChannelResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ChannelResponse{}, err
	}

	return mapToResponse(*ch), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	chID, err := uuid.Parse(id)
	if err != nil {
		return apperror.ErrNotFound
	}

	if err := qtx.Delete(ctx, chID); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(ch Channel) ChannelResponse {
	return ChannelResponse{
		ID:       ch.ID.String(),
		Name:     ch.Name,
		Category: ch.Category,
		Points:   ch.Points,
		Cost:     ch.Cost,
		IsActive: ch.Status == StatusActive,
	}
}

func mapToListResponse(channels []Channel) []ChannelResponse {
	res := make([]ChannelResponse, len(channels))
	for i, ch := range channels {
		res[i] = mapToResponse(ch)
	}
	return res
}
