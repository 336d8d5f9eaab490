package commission

import (
	"context"
	"database/sql"
	"time"

	"go-salescrm/internal/channel"
	commissionerrors "go-salescrm/internal/commission/errors"
	"go-salescrm/internal/user"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Fixed rate catalog. All rates apply to the same net amount; shares are
// independent, not a split of a shrinking pool.
var (
	rateChanceCompany     = decimal.NewFromFloat(0.01)
	rateChanceCompanyDept = decimal.NewFromFloat(0.02)
	rateChancePersonal    = decimal.NewFromFloat(0.03)
	rateCall              = decimal.NewFromFloat(0.02)
	rateTouch             = decimal.NewFromFloat(0.02)

	rateDealManager        = decimal.NewFromFloat(0.03)
	rateDealSupervisor     = decimal.NewFromFloat(0.02)
	rateDealSupervisorDept = decimal.NewFromFloat(0.01)
	rateDealDefault        = decimal.NewFromFloat(0.01)
	rateDealDefaultDept    = decimal.NewFromFloat(0.02)
)

// StageLog is one funnel event as the engine sees it; the source must
// supply logs ordered by occurrence time descending.
type StageLog struct {
	ID         uuid.UUID
	Stage      string
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// DealContext is everything about the customer the engine needs: the
// acquisition channel (nil when the lead has none) and the full ordered
// funnel history.
type DealContext struct {
	CustomerID uuid.UUID
	Channel    *channel.Channel
	Logs       []StageLog
}

// DealContextSource loads a customer's deal context; implemented by the
// customer repository.
type DealContextSource interface {
	DealContext(ctx context.Context, customerID uuid.UUID) (*DealContext, error)
}

// ActorDirectory is the slice of the user repository the engine reads.
type ActorDirectory interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]user.User, error)
	FindByNameIn(ctx context.Context, names []string) ([]user.User, error)
}

// DepartmentDirectory batch-resolves department names for payee lookup.
type DepartmentDirectory interface {
	FindNamesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

//go:generate mockgen -source=engine.go -destination=mock/engine_mock.go -package=mock
type Engine interface {
	// OnDealRecorded computes and persists the commission batch for a DEAL
	// funnel event. The DEAL sale log must already be durably recorded;
	// saleLogID is its id and keys the batch for duplicate detection.
	OnDealRecorded(
		ctx context.Context,
		tx *sql.Tx,
		customerID, dealActorID uuid.UUID,
		dealAmount float64,
		saleLogID uuid.UUID,
	) ([]Commission, error)
}

type engine struct {
	deals       DealContextSource
	users       ActorDirectory
	departments DepartmentDirectory
	commissions Repository
	logger      *zap.Logger
}

func NewEngine(
	deals DealContextSource,
	users ActorDirectory,
	departments DepartmentDirectory,
	commissions Repository,
	logger ...*zap.Logger,
) Engine {
	l := zap.L().Named("commission.engine")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("commission.engine")
	}
	return &engine{
		deals:       deals,
		users:       users,
		departments: departments,
		commissions: commissions,
		logger:      l,
	}
}

// pendingShare is a planned row before persistence. DEPT shares start with a
// nil payee and are resolved against the department's virtual user.
type pendingShare struct {
	payeeID uuid.UUID
	rate    decimal.Decimal
	ctype   string
}

type deptShare struct {
	departmentID uuid.UUID
	rate         decimal.Decimal
}

func (e *engine) OnDealRecorded(
	ctx context.Context,
	tx *sql.Tx,
	customerID, dealActorID uuid.UUID,
	dealAmount float64,
	saleLogID uuid.UUID,
) ([]Commission, error) {

	if dealAmount <= 0 {
		return nil, commissionerrors.ErrInvalidDealAmount
	}

	qCommissions := e.commissions.WithTx(tx)

	// The sale-log id keys the batch: a second invocation for the same DEAL
	// event is rejected instead of silently doubling everyone's payout.
	exists, err := qCommissions.ExistsForSaleLog(ctx, saleLogID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, commissionerrors.ErrDealAlreadyCommissioned
	}

	dc, err := e.deals.DealContext(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, commissionerrors.ErrCustomerNotFound
	}

	gross := decimal.NewFromFloat(dealAmount)
	net := gross
	if dc.Channel != nil {
		net = gross.Mul(decimal.NewFromInt(1).Sub(dc.Channel.FeeRate()))
	}

	chanceLog := latestLogAtStage(dc.Logs, TypeChance)
	callLog := latestLogAtStage(dc.Logs, TypeCall)
	touchLog := latestLogAtStage(dc.Logs, TypeTouch)

	actors, err := e.loadActors(ctx, chanceLog, callLog, touchLog, dealActorID)
	if err != nil {
		return nil, err
	}

	dealActor, ok := actors[dealActorID]
	if !ok {
		return nil, commissionerrors.ErrDealActorNotFound
	}

	// Plan the shares in batch order: CHANCE (+ dept), CALL, TOUCH,
	// DEAL (+ dept). Department shares are resolved afterwards because the
	// payee is whichever user carries the department's name.
	var shares []pendingShare
	var deptShares []deptShare

	if chanceLog != nil {
		category := channel.CategoryCompany
		if dc.Channel != nil && dc.Channel.Category != "" {
			category = dc.Channel.Category
		}

		if category == channel.CategoryPersonal {
			shares = append(shares, pendingShare{chanceLog.ActorID, rateChancePersonal, TypeChance})
		} else {
			shares = append(shares, pendingShare{chanceLog.ActorID, rateChanceCompany, TypeChance})
			if actor, ok := actors[chanceLog.ActorID]; ok && actor.DepartmentID != nil {
				deptShares = append(deptShares, deptShare{*actor.DepartmentID, rateChanceCompanyDept})
				shares = append(shares, pendingShare{uuid.Nil, rateChanceCompanyDept, TypeDept})
			}
		}
	}

	if callLog != nil {
		shares = append(shares, pendingShare{callLog.ActorID, rateCall, TypeCall})
	}
	if touchLog != nil {
		shares = append(shares, pendingShare{touchLog.ActorID, rateTouch, TypeTouch})
	}

	dealRate, dealDeptRate := dealRatesForRole(dealActor.Role)
	shares = append(shares, pendingShare{dealActorID, dealRate, TypeDeal})
	if dealDeptRate.IsPositive() && dealActor.DepartmentID != nil {
		deptShares = append(deptShares, deptShare{*dealActor.DepartmentID, dealDeptRate})
		shares = append(shares, pendingShare{uuid.Nil, dealDeptRate, TypeDept})
	}

	payees, err := e.resolveVirtualPayees(ctx, deptShares)
	if err != nil {
		return nil, err
	}

	// Materialize rows, pulling DEPT payees off the resolved queue in order.
	// A department with no matching-named user simply pays nothing.
	rows := make([]Commission, 0, len(shares))
	deptIdx := 0
	for _, share := range shares {
		payeeID := share.payeeID
		if share.ctype == TypeDept {
			resolved, ok := payees[deptShares[deptIdx].departmentID]
			deptIdx++
			if !ok {
				continue
			}
			payeeID = resolved
		}

		rows = append(rows, Commission{
			ID:         uuid.New(),
			UserID:     payeeID,
			CustomerID: customerID,
			SaleLogID:  saleLogID,
			Amount:     gross.Round(2),
			Commission: net.Mul(share.rate).Round(2),
			Status:     StatusPending,
			Type:       share.ctype,
		})
	}

	if err := qCommissions.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}

	e.logger.Info("commission batch created",
		zap.String("customer_id", customerID.String()),
		zap.String("sale_log_id", saleLogID.String()),
		zap.Int("rows", len(rows)),
		zap.String("net_amount", net.Round(2).String()),
	)

	return rows, nil
}

// latestLogAtStage returns the most recent log at stage; logs arrive ordered
// by occurrence time descending, so the first hit wins.
func latestLogAtStage(logs []StageLog, stage string) *StageLog {
	for i := range logs {
		if logs[i].Stage == stage {
			return &logs[i]
		}
	}
	return nil
}

func dealRatesForRole(role string) (decimal.Decimal, decimal.Decimal) {
	switch role {
	case user.RoleManager:
		return rateDealManager, decimal.Zero
	case user.RoleSupervisor:
		return rateDealSupervisor, rateDealSupervisorDept
	default:
		return rateDealDefault, rateDealDefaultDept
	}
}

// loadActors batch-fetches every user involved in the deal's stages.
func (e *engine) loadActors(
	ctx context.Context,
	chanceLog, callLog, touchLog *StageLog,
	dealActorID uuid.UUID,
) (map[uuid.UUID]user.User, error) {

	idSet := map[uuid.UUID]struct{}{dealActorID: {}}
	for _, log := range []*StageLog{chanceLog, callLog, touchLog} {
		if log != nil {
			idSet[log.ActorID] = struct{}{}
		}
	}

	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	users, err := e.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	actors := make(map[uuid.UUID]user.User, len(users))
	for _, u := range users {
		actors[u.ID] = u
	}
	return actors, nil
}

// resolveVirtualPayees maps each involved department to the user sharing its
// name. Departments without such a user are absent from the result.
func (e *engine) resolveVirtualPayees(
	ctx context.Context,
	deptShares []deptShare,
) (map[uuid.UUID]uuid.UUID, error) {

	if len(deptShares) == 0 {
		return map[uuid.UUID]uuid.UUID{}, nil
	}

	idSet := map[uuid.UUID]struct{}{}
	for _, ds := range deptShares {
		idSet[ds.departmentID] = struct{}{}
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	names, err := e.departments.FindNamesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	nameList := make([]string, 0, len(names))
	for _, name := range names {
		nameList = append(nameList, name)
	}

	virtualUsers, err := e.users.FindByNameIn(ctx, nameList)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]uuid.UUID, len(virtualUsers))
	for _, vu := range virtualUsers {
		byName[vu.Name] = vu.ID
	}

	payees := make(map[uuid.UUID]uuid.UUID, len(names))
	for deptID, name := range names {
		if payeeID, ok := byName[name]; ok {
			payees[deptID] = payeeID
		}
	}
	return payees, nil
}
