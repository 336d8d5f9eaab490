package channel

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CategoryCompany  = "COMPANY"
	CategoryPersonal = "PERSONAL"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Channel is a lead-acquisition source. Points is the channel's fee/rebate
// rate; existing rows store it either as a fraction (0.05) or as a whole
// percentage (5), so consumers must go through FeeRate.
type Channel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"size:255;not null"`
	Category  string    `gorm:"size:16;not null;default:COMPANY"`
	Points    float64   `gorm:"type:decimal(10,4);not null;default:0"`
	Cost      float64   `gorm:"type:decimal(18,2);not null;default:0"`
	Status    string    `gorm:"size:16;not null;default:ACTIVE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// FeeRate normalizes Points to a fraction: values above 1 are whole
// percentages (5 means 5%), everything else is already a fraction.
func (c Channel) FeeRate() decimal.Decimal {
	points := decimal.NewFromFloat(c.Points)
	if points.GreaterThan(one) {
		return points.Div(hundred)
	}
	return points
}
