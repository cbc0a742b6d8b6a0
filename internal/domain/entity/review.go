package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewTimeLayout is the minute-precision layout reviews are displayed with.
const ReviewTimeLayout = "2006-01-02 15:04"

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating and comment on a product. Reviews are immutable once created.
type Review struct {
	ID        uint
	UserID    uuid.UUID
	ProductID uint
	Rating    int
	Comment   string
	CreatedAt time.Time
	Reviewer  string // Username of the author, populated on read.
}

// CreatedAtDisplay formats the creation time with ReviewTimeLayout.
func (r *Review) CreatedAtDisplay() string {
	return r.CreatedAt.Format(ReviewTimeLayout)
}
