package auth

import (
	"context"
	"os"
	"time"

	autherrors "go-salescrm/internal/auth/errors"
	"go-salescrm/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, string, AuthResponse, error) {
	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if u.Status == user.StatusTerminated {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	refreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	s.logger.Info("login success", zap.String("user_id", u.ID.String()))

	return accessToken, refreshToken, toAuthResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	newAccessToken, err := s.generateToken(u, accessTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}
	newRefreshToken, err := s.generateToken(u, refreshTokenTTL)
	if err != nil {
		return "", "", AuthResponse{}, err
	}

	return newAccessToken, newRefreshToken, toAuthResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	resp := toAuthResponse(u)
	return &resp, nil
}

func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return autherrors.ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return autherrors.ErrInvalidToken
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.OldPassword)); err != nil {
		return autherrors.ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(ctx, id, string(hashed)); err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("user_id", userID))
	return nil
}

func (s *service) generateToken(u *user.User, expiry time.Duration) (string, error) {
	departmentID := ""
	if u.DepartmentID != nil {
		departmentID = u.DepartmentID.String()
	}

	claims := jwt.MapClaims{
		"user_id":       u.ID.String(),
		"role":          u.Role,
		"department_id": departmentID,
		"exp":           time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func toAuthResponse(u *user.User) AuthResponse {
	resp := AuthResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Username: u.Username,
		Role:     u.Role,
	}
	if u.DepartmentID != nil {
		resp.DepartmentID = u.DepartmentID.String()
	}
	return resp
}
