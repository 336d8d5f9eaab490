package orgscope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope is the visibility set a list query must be restricted to. The
// zero value is fully restricted (empty set); use Unrestricted for admins.
type Scope struct {
	unrestricted bool
	userIDs      []uuid.UUID
}

func Unrestricted() Scope {
	return Scope{unrestricted: true}
}

func Restricted(userIDs []uuid.UUID) Scope {
	return Scope{userIDs: userIDs}
}

func (s Scope) IsUnrestricted() bool {
	return s.unrestricted
}

func (s Scope) UserIDs() []uuid.UUID {
	return s.userIDs
}

func (s Scope) Contains(id uuid.UUID) bool {
	if s.unrestricted {
		return true
	}
	for _, uid := range s.userIDs {
		if uid == id {
			return true
		}
	}
	return false
}

// Filter returns a gorm scope restricting column to the visible user ids.
// Unrestricted scopes pass the query through untouched.
func Filter(s Scope, column string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if s.unrestricted {
			return db
		}
		return db.Where(column+" IN ?", s.userIDs)
	}
}
