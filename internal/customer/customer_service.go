package customer

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-salescrm/internal/commission"
	customererrors "go-salescrm/internal/customer/errors"
	"go-salescrm/internal/events"
	"go-salescrm/internal/messaging/kafka"
	"go-salescrm/internal/orgscope"
	"go-salescrm/internal/shared/apperror"
	"go-salescrm/internal/shared/contextutil"
	"go-salescrm/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=customer_service.go -destination=mock/customer_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor orgscope.Actor, req CreateCustomerRequest) (CustomerResponse, error)
	GetAll(ctx context.Context, actor orgscope.Actor) ([]CustomerResponse, error)
	GetByID(ctx context.Context, actor orgscope.Actor, id string) (CustomerResponse, error)
	Update(ctx context.Context, actor orgscope.Actor, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	AddSaleLog(ctx context.Context, actor orgscope.Actor, customerID string, req AddSaleLogRequest) (SaleLogResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	engine   commission.Engine
	counter  counter.Repository
	outbox   kafka.OutboxRepository
	resolver orgscope.Resolver
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	engine commission.Engine,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	resolver orgscope.Resolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("customer.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("customer.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		engine:   engine,
		counter:  counterRepo,
		outbox:   outboxRepo,
		resolver: resolver,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actor orgscope.Actor, req CreateCustomerRequest) (CustomerResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create customer requested",
		zap.String("request_id", rid),
		zap.String("name", req.Name),
	)

	ownerID := actor.ID
	if req.OwnerID != "" {
		parsed, err := uuid.Parse(req.OwnerID)
		if err != nil {
			return CustomerResponse{}, apperror.InvalidField("ownerId")
		}
		ownerID = parsed
	}

	var channelID *uuid.UUID
	if req.ChannelID != "" {
		parsed, err := uuid.Parse(req.ChannelID)
		if err != nil {
			return CustomerResponse{}, apperror.InvalidField("sourceId")
		}
		channelID = &parsed
	}

	cust := &Customer{
		ID:          uuid.New(),
		Name:        req.Name,
		Phone:       req.Phone,
		CompanyName: req.CompanyName,
		CourseName:  req.CourseName,
		ChannelID:   channelID,
		OwnerID:     ownerID,
		Status:      StatusLead,
	}

	if err := s.repo.Create(ctx, cust); err != nil {
		s.logger.Error("create customer persist failed", zap.String("request_id", rid), zap.Error(err))
		return CustomerResponse{}, mapCustomerError(err)
	}

	s.logger.Info("create customer success",
		zap.String("request_id", rid),
		zap.String("customer_id", cust.ID.String()),
	)
	return mapToResponse(*cust), nil
}

func (s *service) GetAll(ctx context.Context, actor orgscope.Actor) ([]CustomerResponse, error) {
	scope, err := s.resolver.ResolveScope(ctx, actor)
	if err != nil {
		return nil, err
	}

	customers, err := s.repo.FindAll(ctx, scope)
	if err != nil {
		s.logger.Error("get all customers failed", zap.Error(err))
		return nil, mapCustomerError(err)
	}

	out := make([]CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, mapToResponse(c))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, actor orgscope.Actor, id string) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, apperror.InvalidField("id")
	}

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return CustomerResponse{}, mapCustomerError(err)
	}

	if err := s.authorize(ctx, actor, cust.OwnerID); err != nil {
		return CustomerResponse{}, err
	}

	return mapToResponse(*cust), nil
}

func (s *service) Update(ctx context.Context, actor orgscope.Actor, id string, req UpdateCustomerRequest) (CustomerResponse, error) {
	customerID, err := uuid.Parse(id)
	if err != nil {
		return CustomerResponse{}, apperror.InvalidField("id")
	}

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return CustomerResponse{}, mapCustomerError(err)
	}

	if err := s.authorize(ctx, actor, cust.OwnerID); err != nil {
		return CustomerResponse{}, err
	}

	if req.Name != nil {
		cust.Name = *req.Name
	}
	if req.Phone != nil {
		cust.Phone = *req.Phone
	}
	if req.CompanyName != nil {
		cust.CompanyName = *req.CompanyName
	}
	if req.CourseName != nil {
		cust.CourseName = *req.CourseName
	}
	if req.ChannelID != nil {
		if *req.ChannelID == "" {
			cust.ChannelID = nil
		} else {
			parsed, err := uuid.Parse(*req.ChannelID)
			if err != nil {
				return CustomerResponse{}, apperror.InvalidField("sourceId")
			}
			cust.ChannelID = &parsed
		}
	}
	if req.OwnerID != nil {
		parsed, err := uuid.Parse(*req.OwnerID)
		if err != nil {
			return CustomerResponse{}, apperror.InvalidField("ownerId")
		}
		cust.OwnerID = parsed
	}

	if err := s.repo.Update(ctx, cust); err != nil {
		s.logger.Error("update customer failed",
			zap.String("customer_id", id),
			zap.Error(err),
		)
		return CustomerResponse{}, mapCustomerError(err)
	}

	return mapToResponse(*cust), nil
}

// AddSaleLog appends a funnel event. A DEAL event additionally assigns a
// contract number, triggers commission generation, and stages a deal-closed
// event for the outbox relay, all inside one transaction.
func (s *service) AddSaleLog(ctx context.Context, actor orgscope.Actor, customerID string, req AddSaleLogRequest) (SaleLogResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	custID, err := uuid.Parse(customerID)
	if err != nil {
		return SaleLogResponse{}, apperror.InvalidField("id")
	}
	if !ValidStage(req.Stage) {
		return SaleLogResponse{}, customererrors.ErrInvalidStage
	}
	if req.Stage == StageDeal && (req.ContractAmount == nil || *req.ContractAmount <= 0) {
		return SaleLogResponse{}, customererrors.ErrDealAmountRequired
	}

	cust, err := s.repo.FindByID(ctx, custID)
	if err != nil {
		return SaleLogResponse{}, mapCustomerError(err)
	}

	if err := s.authorize(ctx, actor, cust.OwnerID); err != nil {
		return SaleLogResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add sale log begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SaleLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := time.Now().UTC()

	isEffective := true
	if req.IsEffective != nil {
		isEffective = *req.IsEffective
	}

	log := &SaleLog{
		ID:          uuid.New(),
		CustomerID:  custID,
		ActorID:     actor.ID,
		Stage:       req.Stage,
		Note:        req.Note,
		IsEffective: isEffective,
		OccurredAt:  now,
	}

	if req.Stage == StageDeal {
		log.DealAmount = req.ContractAmount

		nextVal, err := s.counter.GetNextValue(ctx, now.Format("200601"), "contract_no")
		if err != nil {
			s.logger.Error("generate contract number failed", zap.String("request_id", rid), zap.Error(err))
			return SaleLogResponse{}, err
		}
		contractNo := fmt.Sprintf("CT-%s-%06d", now.Format("200601"), nextVal)
		log.ContractNo = &contractNo
	}

	if err := qtx.CreateSaleLog(ctx, log); err != nil {
		s.logger.Error("persist sale log failed", zap.String("request_id", rid), zap.Error(err))
		return SaleLogResponse{}, mapCustomerError(err)
	}

	cust.Status = req.Stage
	cust.LastContactAt = &now
	if err := qtx.Update(ctx, cust); err != nil {
		s.logger.Error("advance customer status failed", zap.String("request_id", rid), zap.Error(err))
		return SaleLogResponse{}, mapCustomerError(err)
	}

	if req.Stage == StageDeal {
		rows, err := s.engine.OnDealRecorded(ctx, tx, custID, actor.ID, *req.ContractAmount, log.ID)
		if err != nil {
			s.logger.Error("commission generation failed",
				zap.String("request_id", rid),
				zap.String("customer_id", custID.String()),
				zap.String("sale_log_id", log.ID.String()),
				zap.Error(err),
			)
			return SaleLogResponse{}, err
		}

		if s.outbox != nil {
			event := events.DealClosedEvent{
				EventType:       events.DealClosedType,
				RequestID:       rid,
				SaleLogID:       log.ID,
				CustomerID:      custID,
				CustomerName:    cust.Name,
				CourseName:      cust.CourseName,
				ActorID:         actor.ID,
				DealAmount:      *req.ContractAmount,
				ContractNo:      *log.ContractNo,
				CommissionCount: len(rows),
				OccurredAt:      now,
			}
			payload, err := json.Marshal(event)
			if err != nil {
				s.logger.Error("marshal deal closed event failed", zap.String("request_id", rid), zap.Error(err))
				return SaleLogResponse{}, err
			}

			outboxRepo := s.outbox.WithTx(tx)
			if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "sale_log",
				AggregateID:   log.ID.String(),
				EventType:     event.EventType,
				Topic:         events.DealClosedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				s.logger.Error("deal closed outbox persist failed",
					zap.String("sale_log_id", log.ID.String()),
					zap.Error(err),
				)
				return SaleLogResponse{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return SaleLogResponse{}, err
	}

	s.logger.Info("sale log recorded",
		zap.String("request_id", rid),
		zap.String("customer_id", custID.String()),
		zap.String("stage", req.Stage),
	)
	return mapLogToResponse(*log), nil
}

// authorize fails with not-found rather than forbidden so callers cannot
// probe for customers outside their scope.
func (s *service) authorize(ctx context.Context, actor orgscope.Actor, ownerID uuid.UUID) error {
	scope, err := s.resolver.ResolveScope(ctx, actor)
	if err != nil {
		return err
	}
	if !scope.Contains(ownerID) {
		return customererrors.ErrCustomerNotFound
	}
	return nil
}

func mapToResponse(c Customer) CustomerResponse {
	resp := CustomerResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Phone:       c.Phone,
		CompanyName: c.CompanyName,
		CourseName:  c.CourseName,
		OwnerID:     c.OwnerID.String(),
		Status:      c.Status,
	}
	if c.ChannelID != nil {
		resp.ChannelID = c.ChannelID.String()
	}
	if c.Channel != nil {
		resp.ChannelName = c.Channel.Name
	}
	if c.LastContactAt != nil {
		resp.LastContactAt = c.LastContactAt.Format(time.RFC3339)
	}
	for _, sl := range c.SaleLogs {
		resp.SaleLogs = append(resp.SaleLogs, mapLogToResponse(sl))
	}
	return resp
}

func mapLogToResponse(sl SaleLog) SaleLogResponse {
	resp := SaleLogResponse{
		ID:          sl.ID.String(),
		CustomerID:  sl.CustomerID.String(),
		ActorID:     sl.ActorID.String(),
		Stage:       sl.Stage,
		Note:        sl.Note,
		IsEffective: sl.IsEffective,
		DealAmount:  sl.DealAmount,
		OccurredAt:  sl.OccurredAt.Format(time.RFC3339),
	}
	if sl.ContractNo != nil {
		resp.ContractNo = *sl.ContractNo
	}
	return resp
}
