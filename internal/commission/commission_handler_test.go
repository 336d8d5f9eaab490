package commission_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-salescrm/internal/commission"
	commissionerrors "go-salescrm/internal/commission/errors"
	"go-salescrm/internal/orgscope"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeCommissionService struct {
	ListFn         func(ctx context.Context, actor orgscope.Actor) ([]commission.CommissionResponse, error)
	UpdateAmountFn func(ctx context.Context, id uuid.UUID, req commission.UpdateCommissionRequest) (*commission.CommissionResponse, error)
	ApproveFn      func(ctx context.Context, id uuid.UUID) (*commission.CommissionResponse, error)
	PayFn          func(ctx context.Context, id uuid.UUID) (*commission.CommissionResponse, error)
}

func (f *fakeCommissionService) List(ctx context.Context, actor orgscope.Actor) ([]commission.CommissionResponse, error) {
	return f.ListFn(ctx, actor)
}
func (f *fakeCommissionService) UpdateAmount(ctx context.Context, id uuid.UUID, req commission.UpdateCommissionRequest) (*commission.CommissionResponse, error) {
	return f.UpdateAmountFn(ctx, id, req)
}
func (f *fakeCommissionService) Approve(ctx context.Context, id uuid.UUID) (*commission.CommissionResponse, error) {
	return f.ApproveFn(ctx, id)
}
func (f *fakeCommissionService) Pay(ctx context.Context, id uuid.UUID) (*commission.CommissionResponse, error) {
	return f.PayFn(ctx, id)
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestCommissionHandler_List(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New()
		svc := &fakeCommissionService{
			ListFn: func(_ context.Context, actor orgscope.Actor) ([]commission.CommissionResponse, error) {
				assert.Equal(t, actorID, actor.ID)
				assert.Equal(t, "SUPERVISOR", actor.Role)
				return []commission.CommissionResponse{{Status: commission.StatusPending}}, nil
			},
		}

		h := commission.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/commissions", nil)
		c.Set("user_id", actorID.String())
		c.Set("role", "SUPERVISOR")

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing identity", func(t *testing.T) {
		h := commission.NewHandler(&fakeCommissionService{})
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodGet, "/commissions", nil)

		h.List(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCommissionHandler_UpdateAmount(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		svc := &fakeCommissionService{
			UpdateAmountFn: func(_ context.Context, gotID uuid.UUID, req commission.UpdateCommissionRequest) (*commission.CommissionResponse, error) {
				assert.Equal(t, id, gotID)
				assert.Equal(t, 1500.0, req.Commission)
				return &commission.CommissionResponse{Commission: "1500.00"}, nil
			},
		}

		h := commission.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPatch, "/commissions/"+id.String(), strings.NewReader(`{"commission":1500}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: id.String()}}

		h.UpdateAmount(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		h := commission.NewHandler(&fakeCommissionService{})
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPatch, "/commissions/abc", strings.NewReader(`{"commission":1500}`))
		c.Params = gin.Params{{Key: "id", Value: "abc"}}

		h.UpdateAmount(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h := commission.NewHandler(&fakeCommissionService{})
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPatch, "/commissions/x", strings.NewReader(`{"commission":0}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.UpdateAmount(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("frozen row", func(t *testing.T) {
		svc := &fakeCommissionService{
			UpdateAmountFn: func(context.Context, uuid.UUID, commission.UpdateCommissionRequest) (*commission.CommissionResponse, error) {
				return nil, commissionerrors.ErrNotEditable
			},
		}

		h := commission.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPatch, "/commissions/x", strings.NewReader(`{"commission":10}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.UpdateAmount(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestCommissionHandler_Lifecycle(t *testing.T) {
	t.Run("approve success", func(t *testing.T) {
		svc := &fakeCommissionService{
			ApproveFn: func(context.Context, uuid.UUID) (*commission.CommissionResponse, error) {
				return &commission.CommissionResponse{Status: commission.StatusApproved}, nil
			},
		}

		h := commission.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/commissions/x/approve", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("pay wrong state", func(t *testing.T) {
		svc := &fakeCommissionService{
			PayFn: func(context.Context, uuid.UUID) (*commission.CommissionResponse, error) {
				return nil, commissionerrors.ErrInvalidStatusTransition
			},
		}

		h := commission.NewHandler(svc)
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/commissions/x/pay", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		h.Pay(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
