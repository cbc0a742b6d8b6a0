package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. IDs are generated by the application.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(254);not null"`
	PasswordHash string    `gorm:"type:varchar(128);not null"`
	IsStaff      bool      `gorm:"not null"`
	IsSuperuser  bool      `gorm:"not null"`
	IsActive     bool      `gorm:"not null"`
	DateJoined   time.Time `gorm:"not null"`
	LastLogin    *time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
