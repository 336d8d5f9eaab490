package salestarget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesTarget is one user's monthly quota. Month is "YYYY-MM"; one row per
// user and month, upserted.
type SalesTarget struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_target_user_month"`
	Month     string          `gorm:"size:7;not null;uniqueIndex:idx_target_user_month"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}
