package training

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"

	LogStatusSubmitted = "SUBMITTED"
	LogStatusApproved  = "APPROVED"
)

// Training is the post-sale licensing workflow record for one customer. At
// most one per customer; provisioned from deal-closed events.
type Training struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	AssigneeID *uuid.UUID `gorm:"type:uuid;index"`
	Status     string     `gorm:"size:16;not null;default:PENDING"`
	CreatedAt  time.Time  `gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime"`

	Logs []TrainingLog `gorm:"foreignKey:TrainingID"`
}

type TrainingLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrainingID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	Stage       string     `gorm:"size:32"`
	Score       *float64   `gorm:"type:decimal(5,2)"`
	Result      string     `gorm:"size:64"`
	Content     string     `gorm:"type:text"`
	Status      string     `gorm:"size:16;not null;default:SUBMITTED"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt  *time.Time
	SubmittedAt time.Time `gorm:"autoCreateTime"`
}
