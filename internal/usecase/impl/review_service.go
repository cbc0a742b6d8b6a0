package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	logger      *slog.Logger
	now         func() time.Time
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	ReviewRepo  repository.ReviewRepository
	Logger      *slog.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		productRepo: params.ProductRepo,
		reviewRepo:  params.ReviewRepo,
		logger:      params.Logger,
		now:         time.Now,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Submit stores the review and returns its display form.
func (srv *reviewService) Submit(ctx context.Context, user *entity.User, slug string, input usecase.ReviewInput) (*usecase.ReviewOutput, error) {
	if !user.IsAuthenticated() {
		return nil, domainerrors.ErrAuthenticationRequired
	}

	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, domainerrors.ErrReviewIncomplete
	}
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, domainerrors.ErrInvalidRating
	}

	product, err := srv.productRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage(slug)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	review := &entity.Review{
		UserID:    user.ID,
		ProductID: product.ID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: srv.now().UTC(),
	}
	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.log(ctx).Info("Review submitted",
		slog.Uint64("productID", uint64(product.ID)),
		slog.Int("rating", review.Rating),
	)

	return &usecase.ReviewOutput{
		Reviewer:  user.Username,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAtDisplay(),
	}, nil
}
