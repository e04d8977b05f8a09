package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

// ReviewUseCase handles review-related business logic
type ReviewUseCase struct {
	repo ReviewRepo
	log  *log.Helper
}

// NewReviewUseCase creates a new ReviewUseCase instance
func NewReviewUseCase(repo ReviewRepo, logger log.Logger) *ReviewUseCase {
	return &ReviewUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// ValidateRating reports ErrRatingOutOfRange unless MinRating <= rating <= MaxRating.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrRatingOutOfRange
	}
	return nil
}

// SubmitReview stores a new review. The movie and the user must exist.
func (uc *ReviewUseCase) SubmitReview(ctx context.Context, review *Review) (*Review, error) {
	if err := ValidateRating(review.Rating); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}
	uc.log.WithContext(ctx).Debugf("user %d reviewed movie %d: %d", review.UserID, review.MovieID, review.Rating)
	return review, nil
}

// GetReview retrieves a review by id
func (uc *ReviewUseCase) GetReview(ctx context.Context, id uint) (*Review, error) {
	review, err := uc.repo.GetReview(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// ListReviews returns all reviews of a movie
func (uc *ReviewUseCase) ListReviews(ctx context.Context, movieID uint) ([]*Review, error) {
	reviews, err := uc.repo.ListReviews(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// UpdateReview rewrites rating, title and body. The rating range is checked again;
// movie and author of a review never change.
func (uc *ReviewUseCase) UpdateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := ValidateRating(review.Rating); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// DeleteReview removes a review
func (uc *ReviewUseCase) DeleteReview(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteReview(ctx, id); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

// Summary retrieves the review count and average rating of a movie
func (uc *ReviewUseCase) Summary(ctx context.Context, movieID uint) (*ReviewSummary, error) {
	summary, err := uc.repo.Summary(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to get review summary: %w", err)
	}
	return summary, nil
}

// TopRated returns up to n movies with the highest average rating
func (uc *ReviewUseCase) TopRated(ctx context.Context, n int) ([]*ReviewSummary, error) {
	if n <= 0 {
		return nil, invalidArgument("n must be positive")
	}
	top, err := uc.repo.TopRated(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get top rated movies: %w", err)
	}
	return top, nil
}
