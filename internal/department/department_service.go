package department

import (
	"context"
	"database/sql"

	"go-salescrm/internal/shared/apperror"

	"github.com/google/uuid"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, id string) (DepartmentResponse, error)
	Update(ctx context.Context, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db   *sql.DB
	repo Repository
}

func NewService(db *sql.DB, repo Repository) Service {
	return &service{db: db, repo: repo}
}

func (s *service) Create(
	ctx context.Context,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept := &Department{
		ID:   uuid.New(),
		Name: req.Name,
		Code: req.Code,
	}
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return DepartmentResponse{}, apperror.InvalidField("parent_id")
		}
		dept.ParentID = &parentID
	}

	if err := qtx.Create(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(ctx context.Context) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(depts), nil
}

func (s *service) GetByID(ctx context.Context, id string) (DepartmentResponse, error) {
	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, apperror.ErrNotFound
	}

	dept, err := s.repo.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	deptID, err := uuid.Parse(id)
	if err != nil {
		return DepartmentResponse{}, apperror.ErrNotFound
	}

	dept, err := qtx.FindByID(ctx, deptID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	dept.Code = req.Code
	if req.ParentID != "" {
		parentID, err := uuid.Parse(req.ParentID)
		if err != nil {
			return DepartmentResponse{}, apperror.InvalidField("parent_id")
		}
		dept.ParentID = &parentID
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	deptID, err := uuid.Parse(id)
	if err != nil {
		return apperror.ErrNotFound
	}

	if err := qtx.Delete(ctx, deptID); err != nil {
		return err
	}

	return tx.Commit()
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:   dept.ID.String(),
		Name: dept.Name,
		Code: dept.Code,
	}
	if dept.ParentID != nil {
		resp.ParentID = dept.ParentID.String()
	}
	for _, child := range dept.Children {
		resp.Children = append(resp.Children, mapToResponse(child))
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
