package commission

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
)

// Row types: one per funnel stage the payee touched, plus DEPT for
// department-level shares paid to the department's virtual user.
const (
	TypeChance = "CHANCE"
	TypeCall   = "CALL"
	TypeTouch  = "TOUCH"
	TypeDeal   = "DEAL"
	TypeDept   = "DEPT"
)

// Commission is one payee's share of a closed deal. Amount is the gross
// deal amount and is identical on every row of a batch; Commission is this
// row's payout. SaleLogID references the DEAL log that triggered the batch
// and doubles as the duplicate-invocation guard.
type Commission struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID       `gorm:"type:uuid;index;not null"`
	SaleLogID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Commission decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status     string          `gorm:"size:16;not null;default:PENDING"`
	Type       string          `gorm:"size:8;not null"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"autoUpdateTime"`
}
