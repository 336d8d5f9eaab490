package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin      = "ADMIN"
	RoleManager    = "MANAGER"
	RoleSupervisor = "SUPERVISOR"
	RoleEmployee   = "EMPLOYEE"
	RoleHR         = "HR"
	RoleFinance    = "FINANCE"
)

const (
	StatusProbation  = "PROBATION"
	StatusRegular    = "REGULAR"
	StatusTerminated = "TERMINATED"
)

// User is a member of the sales organization. SupervisorID links the
// reporting chain; DepartmentID the owning department. A user whose name
// equals a department's name acts as that department's commission payee.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name         string     `gorm:"size:255;not null;index"`
	Username     string     `gorm:"size:64;uniqueIndex;not null"`
	Phone        string     `gorm:"size:32"`
	Password     string     `gorm:"size:255;not null"`
	Role         string     `gorm:"size:16;not null;index"`
	Status       string     `gorm:"size:16;not null;default:PROBATION"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	SupervisorID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt    time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime"`
}
