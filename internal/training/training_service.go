package training

import (
	"context"
	"errors"
	"time"

	"go-salescrm/internal/orgscope"
	"go-salescrm/internal/shared/apperror"
	trainingerrors "go-salescrm/internal/training/errors"
	"go-salescrm/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	List(ctx context.Context, actor orgscope.Actor) ([]TrainingResponse, error)
	Assign(ctx context.Context, id string, req AssignRequest) (TrainingResponse, error)
	SubmitLog(ctx context.Context, id string, req SubmitLogRequest) (TrainingLogResponse, error)
	ApproveLog(ctx context.Context, logID string, approverID uuid.UUID) (TrainingLogResponse, error)
	// EnsureForCustomer provisions the training record for a closed deal.
	// Safe to call more than once per customer.
	EnsureForCustomer(ctx context.Context, customerID uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("training.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("training.service")
	}
	return &service{repo: repo, logger: l}
}

// List shows everything to admins and managers; everyone else sees only the
// trainings assigned to them.
func (s *service) List(ctx context.Context, actor orgscope.Actor) ([]TrainingResponse, error) {
	var assigneeFilter *uuid.UUID
	if actor.Role != user.RoleAdmin && actor.Role != user.RoleManager {
		assigneeFilter = &actor.ID
	}

	trainings, err := s.repo.FindAll(ctx, assigneeFilter)
	if err != nil {
		return nil, err
	}

	customerIDs := make([]uuid.UUID, 0, len(trainings))
	assigneeIDs := make([]uuid.UUID, 0, len(trainings))
	for _, t := range trainings {
		customerIDs = append(customerIDs, t.CustomerID)
		if t.AssigneeID != nil {
			assigneeIDs = append(assigneeIDs, *t.AssigneeID)
		}
	}

	customers, err := s.repo.CustomerInfoByIDs(ctx, customerIDs)
	if err != nil {
		return nil, err
	}
	assignees, err := s.repo.UserNamesByIDs(ctx, assigneeIDs)
	if err != nil {
		return nil, err
	}

	out := make([]TrainingResponse, 0, len(trainings))
	for _, t := range trainings {
		out = append(out, toTrainingResponse(t, customers, assignees))
	}
	return out, nil
}

// Assign hands the training to an instructor and moves it in progress.
func (s *service) Assign(ctx context.Context, id string, req AssignRequest) (TrainingResponse, error) {
	trainingID, err := uuid.Parse(id)
	if err != nil {
		return TrainingResponse{}, apperror.InvalidField("id")
	}
	assigneeID, err := uuid.Parse(req.AssigneeID)
	if err != nil {
		return TrainingResponse{}, apperror.InvalidField("assigneeId")
	}

	t, err := s.repo.FindByID(ctx, trainingID)
	if err != nil {
		return TrainingResponse{}, mapTrainingError(err)
	}

	t.AssigneeID = &assigneeID
	t.Status = StatusInProgress
	if err := s.repo.Update(ctx, t); err != nil {
		return TrainingResponse{}, mapTrainingError(err)
	}

	s.logger.Info("training assigned",
		zap.String("training_id", id),
		zap.String("assignee_id", req.AssigneeID),
	)

	customers, err := s.repo.CustomerInfoByIDs(ctx, []uuid.UUID{t.CustomerID})
	if err != nil {
		return TrainingResponse{}, err
	}
	assignees, err := s.repo.UserNamesByIDs(ctx, []uuid.UUID{assigneeID})
	if err != nil {
		return TrainingResponse{}, err
	}

	return toTrainingResponse(*t, customers, assignees), nil
}

func (s *service) SubmitLog(ctx context.Context, id string, req SubmitLogRequest) (TrainingLogResponse, error) {
	trainingID, err := uuid.Parse(id)
	if err != nil {
		return TrainingLogResponse{}, apperror.InvalidField("id")
	}

	t, err := s.repo.FindByID(ctx, trainingID)
	if err != nil {
		return TrainingLogResponse{}, mapTrainingError(err)
	}

	log := &TrainingLog{
		ID:         uuid.New(),
		TrainingID: t.ID,
		Stage:      req.Stage,
		Score:      req.Score,
		Result:     req.Result,
		Content:    req.Content,
		Status:     LogStatusSubmitted,
	}

	if err := s.repo.CreateLog(ctx, log); err != nil {
		return TrainingLogResponse{}, mapTrainingError(err)
	}

	// Touch the parent so it sorts to the top of the list.
	if err := s.repo.Update(ctx, t); err != nil {
		return TrainingLogResponse{}, mapTrainingError(err)
	}

	s.logger.Info("training log submitted",
		zap.String("training_id", id),
		zap.String("stage", req.Stage),
	)

	return toLogResponse(*log), nil
}

func (s *service) ApproveLog(ctx context.Context, logID string, approverID uuid.UUID) (TrainingLogResponse, error) {
	id, err := uuid.Parse(logID)
	if err != nil {
		return TrainingLogResponse{}, apperror.InvalidField("logId")
	}

	log, err := s.repo.FindLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TrainingLogResponse{}, trainingerrors.ErrLogNotFound
		}
		return TrainingLogResponse{}, err
	}

	if log.Status == LogStatusApproved {
		return TrainingLogResponse{}, trainingerrors.ErrLogAlreadyApproved
	}

	now := time.Now().UTC()
	log.Status = LogStatusApproved
	log.ApprovedBy = &approverID
	log.ApprovedAt = &now

	if err := s.repo.UpdateLog(ctx, log); err != nil {
		return TrainingLogResponse{}, err
	}

	s.logger.Info("training log approved",
		zap.String("log_id", logID),
		zap.String("approved_by", approverID.String()),
	)

	return toLogResponse(*log), nil
}

func (s *service) EnsureForCustomer(ctx context.Context, customerID uuid.UUID) error {
	t := &Training{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     StatusPending,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			s.logger.Debug("training already provisioned",
				zap.String("customer_id", customerID.String()),
			)
			return nil
		}
		return err
	}

	s.logger.Info("training provisioned",
		zap.String("training_id", t.ID.String()),
		zap.String("customer_id", customerID.String()),
	)
	return nil
}

func mapTrainingError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return trainingerrors.ErrTrainingNotFound
	}
	return err
}

func toTrainingResponse(
	t Training,
	customers map[uuid.UUID]CustomerInfo,
	assignees map[uuid.UUID]string,
) TrainingResponse {
	resp := TrainingResponse{
		ID:         t.ID.String(),
		CustomerID: t.CustomerID.String(),
		Status:     t.Status,
	}
	if info, ok := customers[t.CustomerID]; ok {
		resp.CustomerName = info.Name
		resp.CourseName = info.CourseName
	}
	if t.AssigneeID != nil {
		resp.AssigneeID = t.AssigneeID.String()
		resp.AssigneeName = assignees[*t.AssigneeID]
	}
	for _, log := range t.Logs {
		resp.Logs = append(resp.Logs, toLogResponse(log))
	}
	return resp
}

func toLogResponse(log TrainingLog) TrainingLogResponse {
	resp := TrainingLogResponse{
		ID:          log.ID.String(),
		TrainingID:  log.TrainingID.String(),
		Stage:       log.Stage,
		Score:       log.Score,
		Result:      log.Result,
		Content:     log.Content,
		Status:      log.Status,
		SubmittedAt: log.SubmittedAt.Format(time.RFC3339),
	}
	if log.ApprovedBy != nil {
		resp.ApprovedBy = log.ApprovedBy.String()
	}
	return resp
}
