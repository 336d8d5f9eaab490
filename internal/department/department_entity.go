package department

import (
	"time"

	"github.com/google/uuid"
)

// Department is a node in the org tree. Department-level commission shares
// are paid to the user whose name matches the department's name; that link
// is by name only, there is no foreign key.
type Department struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"size:255;not null;uniqueIndex"`
	Code      string     `gorm:"size:32"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`

	Children []Department `gorm:"foreignKey:ParentID"`
}
