package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// ReviewInput is a parsed review submission.
type ReviewInput struct {
	Rating  int
	Comment string
}

// ReviewOutput is the JSON payload returned for a stored review.
type ReviewOutput struct {
	Reviewer  string `json:"reviewer"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// ReviewUsecase defines review submission.
type ReviewUsecase interface {
	// Submit stores a review by user on the product identified by slug.
	Submit(ctx context.Context, user *entity.User, slug string, input ReviewInput) (*ReviewOutput, error)
}
