package entity

import (
	"time"

	"github.com/google/uuid"
)

// FlashLevel is the severity of a one-shot message.
type FlashLevel string

const (
	FlashSuccess FlashLevel = "success"
	FlashInfo    FlashLevel = "info"
	FlashError   FlashLevel = "error"
)

// Flash is a message shown once on the next rendered page.
type Flash struct {
	Level FlashLevel
	Text  string
}

// Session is the per-visitor key-value state persisted between requests.
type Session struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Cart      Cart
	Flashes   []Flash
	ExpiresAt time.Time
}

// NewSession starts an anonymous session that expires after ttl.
func NewSession(now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		Cart:      Cart{},
		ExpiresAt: now.Add(ttl),
	}
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// AddFlash queues a message for the next rendered page.
func (s *Session) AddFlash(level FlashLevel, text string) {
	s.Flashes = append(s.Flashes, Flash{Level: level, Text: text})
}

// PopFlashes returns the queued messages and clears the queue.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil

	return flashes
}
