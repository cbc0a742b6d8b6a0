package model

import (
	"time"

	"github.com/google/uuid"
)

// FlashData is the stored form of a queued flash message.
type FlashData struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

// SessionModel mirrors the 'sessions' table. Cart and flashes are stored as JSON text.
type SessionModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index"`
	Cart      map[string]int `gorm:"type:text;serializer:json"`
	Flashes   []FlashData    `gorm:"type:text;serializer:json"`
	ExpiresAt time.Time      `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionModel) TableName() string {
	return "sessions"
}
