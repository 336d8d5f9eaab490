package commission_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-salescrm/internal/channel"
	"go-salescrm/internal/commission"
	commissionerrors "go-salescrm/internal/commission/errors"
	commissionMock "go-salescrm/internal/commission/mock"
	"go-salescrm/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeDealSource struct {
	dc  *commission.DealContext
	err error
}

func (f *fakeDealSource) DealContext(context.Context, uuid.UUID) (*commission.DealContext, error) {
	return f.dc, f.err
}

// fakeUserDirectory answers both lookups from a single user list.
type fakeUserDirectory struct {
	users []user.User
}

func (f *fakeUserDirectory) FindByIDs(_ context.Context, ids []uuid.UUID) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		for _, id := range ids {
			if u.ID == id {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserDirectory) FindByNameIn(_ context.Context, names []string) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		for _, name := range names {
			if u.Name == name {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

type fakeDeptDirectory struct {
	names map[uuid.UUID]string
}

func (f *fakeDeptDirectory) FindNamesByIDs(context.Context, []uuid.UUID) (map[uuid.UUID]string, error) {
	return f.names, nil
}

type engineDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *commissionMock.MockRepository
	deals   *fakeDealSource
	users   *fakeUserDirectory
	depts   *fakeDeptDirectory
	engine  commission.Engine
}

func setupEngineTest(t *testing.T) *engineDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)

	repo := commissionMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()

	deals := &fakeDealSource{}
	users := &fakeUserDirectory{}
	depts := &fakeDeptDirectory{names: map[uuid.UUID]string{}}

	return &engineDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		deals:   deals,
		users:   users,
		depts:   depts,
		engine:  commission.NewEngine(deals, users, depts, repo, zap.NewNop()),
	}
}

func (d *engineDeps) beginTx(t *testing.T) *sql.Tx {
	t.Helper()
	d.sqlMock.ExpectBegin()
	tx, err := d.db.Begin()
	require.NoError(t, err)
	return tx
}

func stageLog(stage string, actorID uuid.UUID, occurredAt time.Time) commission.StageLog {
	return commission.StageLog{
		ID:         uuid.New(),
		Stage:      stage,
		ActorID:    actorID,
		OccurredAt: occurredAt,
	}
}

func TestEngine_OnDealRecorded_FullFunnelCompanyChannel(t *testing.T) {
	deps := setupEngineTest(t)
	defer deps.db.Close()

	customerID := uuid.New()
	saleLogID := uuid.New()
	deptID := uuid.New()
	chanceActor := uuid.New()
	touchActor := uuid.New()
	dealActor := uuid.New()
	virtualUser := uuid.New()
	now := time.Now().UTC()

	deps.users.users = []user.User{
		{ID: chanceActor, Name: "Ana", Role: user.RoleEmployee, DepartmentID: &deptID},
		{ID: touchActor, Name: "Budi", Role: user.RoleEmployee},
		{ID: dealActor, Name: "Citra", Role: user.RoleEmployee, DepartmentID: &deptID},
		{ID: virtualUser, Name: "Telesales", Role: user.RoleEmployee},
	}
	deps.depts.names = map[uuid.UUID]string{deptID: "Telesales"}

	// Company channel charges a 5% fee, stored as whole-percentage points.
	deps.deals.dc = &commission.DealContext{
		CustomerID: customerID,
		Channel:    &channel.Channel{Category: channel.CategoryCompany, Points: 5},
		Logs: []commission.StageLog{
			stageLog(commission.TypeDeal, dealActor, now),
			stageLog(commission.TypeTouch, touchActor, now.Add(-time.Hour)),
			stageLog(commission.TypeCall, touchActor, now.Add(-2*time.Hour)),
			stageLog(commission.TypeChance, chanceActor, now.Add(-3*time.Hour)),
		},
	}

	deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), saleLogID).Return(false, nil)

	var created []commission.Commission
	deps.repo.EXPECT().
		CreateBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, rows []commission.Commission) error {
			created = rows
			return nil
		})

	tx := deps.beginTx(t)
	rows, err := deps.engine.OnDealRecorded(context.Background(), tx, customerID, dealActor, 100000, saleLogID)

	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, created, rows)

	// Net base is 100000 * (1 - 0.05) = 95000; every rate applies to it.
	expected := []struct {
		userID     uuid.UUID
		ctype      string
		commission string
	}{
		{chanceActor, commission.TypeChance, "950"},
		{virtualUser, commission.TypeDept, "1900"},
		{touchActor, commission.TypeCall, "1900"},
		{touchActor, commission.TypeTouch, "1900"},
		{dealActor, commission.TypeDeal, "950"},
		{virtualUser, commission.TypeDept, "1900"},
	}
	for i, want := range expected {
		assert.Equal(t, want.userID, rows[i].UserID, "row %d payee", i)
		assert.Equal(t, want.ctype, rows[i].Type, "row %d type", i)
		assert.Equal(t, want.commission, rows[i].Commission.String(), "row %d payout", i)
		assert.Equal(t, "100000", rows[i].Amount.String(), "row %d gross", i)
		assert.Equal(t, commission.StatusPending, rows[i].Status)
		assert.Equal(t, saleLogID, rows[i].SaleLogID)
		assert.Equal(t, customerID, rows[i].CustomerID)
	}
}

func TestEngine_OnDealRecorded_PersonalChannel(t *testing.T) {
	deps := setupEngineTest(t)
	defer deps.db.Close()

	customerID := uuid.New()
	saleLogID := uuid.New()
	deptID := uuid.New()
	chanceActor := uuid.New()

	// The chance actor has a department, but personal channels never pay a
	// department share on the chance stage. The deal is closed by a manager,
	// which suppresses the deal-stage department share too.
	deps.users.users = []user.User{
		{ID: chanceActor, Name: "Dewi", Role: user.RoleManager, DepartmentID: &deptID},
	}
	deps.deals.dc = &commission.DealContext{
		CustomerID: customerID,
		Channel:    &channel.Channel{Category: channel.CategoryPersonal, Points: 0},
		Logs: []commission.StageLog{
			stageLog(commission.TypeChance, chanceActor, time.Now().UTC()),
		},
	}

	deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), saleLogID).Return(false, nil)
	deps.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)

	tx := deps.beginTx(t)
	rows, err := deps.engine.OnDealRecorded(context.Background(), tx, customerID, chanceActor, 50000, saleLogID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, commission.TypeChance, rows[0].Type)
	assert.Equal(t, "1500", rows[0].Commission.String())

	assert.Equal(t, commission.TypeDeal, rows[1].Type)
	assert.Equal(t, "1500", rows[1].Commission.String())
}

func TestEngine_OnDealRecorded_PointsNormalization(t *testing.T) {
	// Points stored as 5 and as 0.05 must produce the same payouts.
	run := func(t *testing.T, points float64) string {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		customerID := uuid.New()
		saleLogID := uuid.New()
		dealActor := uuid.New()

		deps.users.users = []user.User{
			{ID: dealActor, Name: "Eko", Role: user.RoleManager},
		}
		deps.deals.dc = &commission.DealContext{
			CustomerID: customerID,
			Channel:    &channel.Channel{Category: channel.CategoryCompany, Points: points},
		}

		deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), saleLogID).Return(false, nil)
		deps.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)

		tx := deps.beginTx(t)
		rows, err := deps.engine.OnDealRecorded(context.Background(), tx, customerID, dealActor, 100000, saleLogID)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		return rows[0].Commission.String()
	}

	whole := run(t, 5)
	fraction := run(t, 0.05)

	assert.Equal(t, whole, fraction)
	assert.Equal(t, "2850", whole) // 95000 * 3%
}

func TestEngine_OnDealRecorded_SupervisorDealShares(t *testing.T) {
	deps := setupEngineTest(t)
	defer deps.db.Close()

	customerID := uuid.New()
	saleLogID := uuid.New()
	deptID := uuid.New()
	dealActor := uuid.New()
	virtualUser := uuid.New()

	deps.users.users = []user.User{
		{ID: dealActor, Name: "Fajar", Role: user.RoleSupervisor, DepartmentID: &deptID},
		{ID: virtualUser, Name: "Field Sales", Role: user.RoleEmployee},
	}
	deps.depts.names = map[uuid.UUID]string{deptID: "Field Sales"}
	deps.deals.dc = &commission.DealContext{CustomerID: customerID}

	deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), saleLogID).Return(false, nil)
	deps.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)

	tx := deps.beginTx(t)
	rows, err := deps.engine.OnDealRecorded(context.Background(), tx, customerID, dealActor, 10000, saleLogID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	// No channel means no fee: rates apply to the gross amount.
	assert.Equal(t, commission.TypeDeal, rows[0].Type)
	assert.Equal(t, "200", rows[0].Commission.String())

	assert.Equal(t, commission.TypeDept, rows[1].Type)
	assert.Equal(t, virtualUser, rows[1].UserID)
	assert.Equal(t, "100", rows[1].Commission.String())
}

func TestEngine_OnDealRecorded_UnresolvableVirtualUser(t *testing.T) {
	deps := setupEngineTest(t)
	defer deps.db.Close()

	customerID := uuid.New()
	saleLogID := uuid.New()
	deptID := uuid.New()
	dealActor := uuid.New()

	// No user carries the department's name: the department share is
	// silently dropped, the personal share survives.
	deps.users.users = []user.User{
		{ID: dealActor, Name: "Gita", Role: user.RoleEmployee, DepartmentID: &deptID},
	}
	deps.depts.names = map[uuid.UUID]string{deptID: "Inside Sales"}
	deps.deals.dc = &commission.DealContext{CustomerID: customerID}

	deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), saleLogID).Return(false, nil)
	deps.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)

	tx := deps.beginTx(t)
	rows, err := deps.engine.OnDealRecorded(context.Background(), tx, customerID, dealActor, 10000, saleLogID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, commission.TypeDeal, rows[0].Type)
	assert.Equal(t, dealActor, rows[0].UserID)
}

func TestEngine_OnDealRecorded_LatestStageLogWins(t *testing.T) {
	deps := setupEngineTest(t)
	defer deps.db.Close()

	customerID := uuid.New()
	saleLogID := uuid.New()
	oldActor := uuid.New()
	newActor := uuid.New()
	dealActor := uuid.New()
	now := time.Now().UTC()

	deps.users.users = []user.User{
		{ID: oldActor, Name: "Hana", Role: user.RoleEmployee},
		{ID: newActor, Name: "Indra", Role: user.RoleEmployee},
		{ID: dealActor, Name: "Joko", Role: user.RoleManager},
	}
	// Logs arrive newest first; the CALL credit goes to the newer actor.
	deps.deals.dc = &commission.DealContext{
		CustomerID: customerID,
		Logs: []commission.StageLog{
			stageLog(commission.TypeCall, newActor, now),
			stageLog(commission.TypeCall, oldActor, now.Add(-time.Hour)),
		},
	}

	deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), saleLogID).Return(false, nil)
	deps.repo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(nil)

	tx := deps.beginTx(t)
	rows, err := deps.engine.OnDealRecorded(context.Background(), tx, customerID, dealActor, 10000, saleLogID)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, commission.TypeCall, rows[0].Type)
	assert.Equal(t, newActor, rows[0].UserID)
}

func TestEngine_OnDealRecorded_Failures(t *testing.T) {
	t.Run("non-positive amount", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		tx := deps.beginTx(t)
		_, err := deps.engine.OnDealRecorded(context.Background(), tx, uuid.New(), uuid.New(), 0, uuid.New())
		assert.ErrorIs(t, err, commissionerrors.ErrInvalidDealAmount)
	})

	t.Run("duplicate sale log", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		saleLogID := uuid.New()
		deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), saleLogID).Return(true, nil)

		tx := deps.beginTx(t)
		_, err := deps.engine.OnDealRecorded(context.Background(), tx, uuid.New(), uuid.New(), 100, saleLogID)
		assert.ErrorIs(t, err, commissionerrors.ErrDealAlreadyCommissioned)
	})

	t.Run("customer missing", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.deals.dc = nil
		deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), gomock.Any()).Return(false, nil)

		tx := deps.beginTx(t)
		_, err := deps.engine.OnDealRecorded(context.Background(), tx, uuid.New(), uuid.New(), 100, uuid.New())
		assert.ErrorIs(t, err, commissionerrors.ErrCustomerNotFound)
	})

	t.Run("deal actor missing", func(t *testing.T) {
		deps := setupEngineTest(t)
		defer deps.db.Close()

		deps.deals.dc = &commission.DealContext{CustomerID: uuid.New()}
		deps.repo.EXPECT().ExistsForSaleLog(gomock.Any(), gomock.Any()).Return(false, nil)

		tx := deps.beginTx(t)
		_, err := deps.engine.OnDealRecorded(context.Background(), tx, uuid.New(), uuid.New(), 100, uuid.New())
		assert.ErrorIs(t, err, commissionerrors.ErrDealActorNotFound)
	})
}
