package customer

import (
	"time"

	"go-salescrm/internal/channel"

	"github.com/google/uuid"
)

// Funnel stages; also mirrored onto Customer.Status as the lead advances.
const (
	StageChance = "CHANCE"
	StageCall   = "CALL"
	StageTouch  = "TOUCH"
	StageDeal   = "DEAL"
)

const StatusLead = "LEAD"

type Customer struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"size:255;not null"`
	Phone         string     `gorm:"size:32"`
	CompanyName   string     `gorm:"size:255"`
	CourseName    string     `gorm:"size:255"`
	ChannelID     *uuid.UUID `gorm:"type:uuid;index"`
	OwnerID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	Status        string     `gorm:"size:16;not null;default:LEAD"`
	LastContactAt *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Channel  *channel.Channel `gorm:"foreignKey:ChannelID"`
	SaleLogs []SaleLog        `gorm:"foreignKey:CustomerID"`
}

// SaleLog is one append-only funnel event. DealAmount is set only on DEAL
// logs; ContractNo is assigned when the deal closes. Rows are never mutated
// after creation.
type SaleLog struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ActorID     uuid.UUID `gorm:"type:uuid;index;not null"`
	Stage       string    `gorm:"size:16;not null;index"`
	Note        string    `gorm:"type:text"`
	IsEffective bool      `gorm:"not null;default:true"`
	DealAmount  *float64  `gorm:"type:decimal(18,2)"`
	ContractNo  *string   `gorm:"size:32"`
	OccurredAt  time.Time `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// ValidStage reports whether s is one of the four funnel stages.
func ValidStage(s string) bool {
	switch s {
	case StageChance, StageCall, StageTouch, StageDeal:
		return true
	}
	return false
}
