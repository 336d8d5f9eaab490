package commission_test

import (
	"context"
	"database/sql"
	"testing"

	"go-salescrm/internal/commission"
	commissionerrors "go-salescrm/internal/commission/errors"
	commissionMock "go-salescrm/internal/commission/mock"
	"go-salescrm/internal/orgscope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeResolver struct {
	scope orgscope.Scope
	err   error
}

func (f *fakeResolver) ResolveScope(context.Context, orgscope.Actor) (orgscope.Scope, error) {
	return f.scope, f.err
}

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	repo     *commissionMock.MockRepository
	resolver *fakeResolver
	service  commission.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	repo := commissionMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	resolver := &fakeResolver{scope: orgscope.Unrestricted()}

	return &serviceDeps{
		db:       db,
		sqlMock:  sqlMock,
		repo:     repo,
		resolver: resolver,
		service:  commission.NewService(db, repo, resolver, zap.NewNop()),
	}
}

func pendingRow(id uuid.UUID) *commission.Commission {
	return &commission.Commission{
		ID:     id,
		UserID: uuid.New(),
		Status: commission.StatusPending,
		Type:   commission.TypeDeal,
	}
}

func TestCommissionService_List(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	actor := orgscope.Actor{ID: uuid.New(), Role: "MANAGER"}

	t.Run("returns scoped rows", func(t *testing.T) {
		row := pendingRow(uuid.New())
		row.Amount = decimal.NewFromInt(100000)
		row.Commission = decimal.NewFromFloat(1900.5)

		deps.resolver.scope = orgscope.Restricted([]uuid.UUID{actor.ID})
		deps.repo.EXPECT().
			FindAll(ctx, gomock.Any()).
			Return([]commission.ListedCommission{
				{Commission: *row, UserName: "Ana", CustomerName: "PT Maju"},
			}, nil)

		resp, err := deps.service.List(ctx, actor)

		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Ana", resp[0].UserName)
		assert.Equal(t, "PT Maju", resp[0].CustomerName)
		assert.Equal(t, "100000.00", resp[0].Amount)
		assert.Equal(t, "1900.50", resp[0].Commission)
	})

	t.Run("fails closed when scope resolution fails", func(t *testing.T) {
		deps.resolver.err = assert.AnError
		defer func() { deps.resolver.err = nil }()

		_, err := deps.service.List(ctx, actor)
		assert.Error(t, err)
	})
}

func TestCommissionService_UpdateAmount(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()

	t.Run("adjusts a pending payout", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		row := pendingRow(id)
		deps.repo.EXPECT().FindByID(ctx, id).Return(row, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.UpdateAmount(ctx, id, commission.UpdateCommissionRequest{Commission: 1234.567})

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, "1234.57", resp.Commission)
	})

	t.Run("rejects non-pending rows", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		row := pendingRow(id)
		row.Status = commission.StatusApproved
		deps.repo.EXPECT().FindByID(ctx, id).Return(row, nil)

		_, err := deps.service.UpdateAmount(ctx, id, commission.UpdateCommissionRequest{Commission: 100})
		assert.ErrorIs(t, err, commissionerrors.ErrNotEditable)
	})

	t.Run("maps missing rows", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.UpdateAmount(ctx, id, commission.UpdateCommissionRequest{Commission: 100})
		assert.ErrorIs(t, err, commissionerrors.ErrCommissionNotFound)
	})
}

func TestCommissionService_Lifecycle(t *testing.T) {
	deps := setupServiceTest(t)
	defer deps.db.Close()

	ctx := context.Background()
	id := uuid.New()

	t.Run("approve pending", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.EXPECT().FindByID(ctx, id).Return(pendingRow(id), nil)
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, row *commission.Commission) error {
				assert.Equal(t, commission.StatusApproved, row.Status)
				return nil
			})

		resp, err := deps.service.Approve(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, commission.StatusApproved, resp.Status)
	})

	t.Run("pay approved", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		row := pendingRow(id)
		row.Status = commission.StatusApproved
		deps.repo.EXPECT().FindByID(ctx, id).Return(row, nil)
		deps.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		resp, err := deps.service.Pay(ctx, id)

		assert.NoError(t, err)
		assert.Equal(t, commission.StatusPaid, resp.Status)
	})

	t.Run("pay straight from pending is rejected", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.EXPECT().FindByID(ctx, id).Return(pendingRow(id), nil)

		_, err := deps.service.Pay(ctx, id)
		assert.ErrorIs(t, err, commissionerrors.ErrInvalidStatusTransition)
	})

	t.Run("approve an already approved row is rejected", func(t *testing.T) {
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		row := pendingRow(id)
		row.Status = commission.StatusApproved
		deps.repo.EXPECT().FindByID(ctx, id).Return(row, nil)

		_, err := deps.service.Approve(ctx, id)
		assert.ErrorIs(t, err, commissionerrors.ErrInvalidStatusTransition)
	})
}
