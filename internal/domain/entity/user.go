package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered account.
// Staff and superuser flags are independent of product authorship.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
}

// IsAuthenticated reports whether u represents a logged-in account.
func (u *User) IsAuthenticated() bool {
	return u != nil && u.ID != uuid.Nil
}
