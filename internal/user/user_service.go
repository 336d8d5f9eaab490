package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	usererrors "go-salescrm/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const (
	// AssignableOptionsKey caches the dropdown of users a lead can be
	// assigned to; invalidated on every user mutation.
	AssignableOptionsKey = "users:assignable"

	defaultPassword = "123456"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetAssignableOptions(ctx context.Context) ([]UserOption, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	password := req.Password
	if password == "" {
		password = defaultPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusProbation
	}

	u := &User{
		ID:       uuid.New(),
		Name:     req.Name,
		Username: req.Phone, // phone doubles as the login name
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     req.Role,
		Status:   status,
	}

	if u.DepartmentID, err = uuidPtr(req.DepartmentID); err != nil {
		return UserResponse{}, err
	}
	if u.SupervisorID, err = uuidPtr(req.SupervisorID); err != nil {
		return UserResponse{}, usererrors.ErrInvalidSupervisor
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("user created",
		zap.String("user_id", u.ID.String()),
		zap.String("role", u.Role),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

// GetAssignableOptions serves the assignment dropdown from redis when warm;
// singleflight collapses concurrent rebuilds into a single repo query.
func (s *service) GetAssignableOptions(ctx context.Context) ([]UserOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, AssignableOptionsKey).Result(); err == nil {
			var options []UserOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(AssignableOptionsKey, func() (interface{}, error) {
		users, err := s.repo.FindAssignable(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]UserOption, len(users))
		for i, u := range users {
			options[i] = UserOption{ID: u.ID.String(), Name: u.Name, Role: u.Role}
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				_ = s.rdb.Set(ctx, AssignableOptionsKey, payload, 10*time.Minute).Err()
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]UserOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrUserNotFound
	}

	u, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	uid, err := uuid.Parse(id)
	if err != nil {
		return UserResponse{}, usererrors.ErrUserNotFound
	}

	u, err := qtx.FindByID(ctx, uid)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
		u.Username = *req.Phone // keep login name in sync
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.Status != nil {
		u.Status = *req.Status
	}
	if req.DepartmentID != nil {
		if u.DepartmentID, err = uuidPtr(*req.DepartmentID); err != nil {
			return UserResponse{}, err
		}
	}
	if req.SupervisorID != nil {
		if u.SupervisorID, err = uuidPtr(*req.SupervisorID); err != nil {
			return UserResponse{}, usererrors.ErrInvalidSupervisor
		}
	}

	if err := qtx.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	uid, err := uuid.Parse(id)
	if err != nil {
		return usererrors.ErrUserNotFound
	}

	if err := qtx.Delete(ctx, uid); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptionsCache(ctx)
	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, AssignableOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate assignable options cache",
			zap.Error(err),
			zap.String("key", AssignableOptionsKey),
		)
	}
}

func uuidPtr(s string) (*uuid.UUID, error) {
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Username: u.Username,
		Phone:    u.Phone,
		Role:     u.Role,
		Status:   u.Status,
	}
	if u.DepartmentID != nil {
		resp.DepartmentID = u.DepartmentID.String()
	}
	if u.SupervisorID != nil {
		resp.SupervisorID = u.SupervisorID.String()
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res
}
