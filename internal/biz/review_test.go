package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestValidateRating(t *testing.T) {
	tests := []struct {
		rating int
		valid  bool
	}{
		{rating: -1},
		{rating: 0},
		{rating: 1, valid: true},
		{rating: 5, valid: true},
		{rating: 10, valid: true},
		{rating: 11},
	}
	for _, tt := range tests {
		err := ValidateRating(tt.rating)
		if tt.valid {
			assert.NoError(t, err, "rating %d", tt.rating)
		} else {
			assert.True(t, errors.Is(err, ErrRatingOutOfRange), "rating %d", tt.rating)
		}
	}
}

func TestRatingOutOfRangeIsInvalidArgument(t *testing.T) {
	assert.True(t, errors.Is(ErrRatingOutOfRange, ErrInvalidArgument))
	assert.True(t, errors.Is(ValidateRating(0), ErrInvalidArgument))
	assert.False(t, errors.Is(ErrInvalidArgument, ErrRatingOutOfRange))
	assert.False(t, errors.Is(invalidArgument("title is required"), ErrRatingOutOfRange))
}

func TestSubmitReviewRejectsOutOfRangeBeforeStore(t *testing.T) {
	repo := new(mockReviewRepo)
	uc := NewReviewUseCase(repo, testLogger)

	for _, rating := range []int{0, 11} {
		_, err := uc.SubmitReview(context.Background(), &Review{MovieID: 1, UserID: 1, Rating: rating})
		assert.True(t, errors.Is(err, ErrRatingOutOfRange))
	}
	repo.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestSubmitReviewStoresBoundaryRatings(t *testing.T) {
	repo := new(mockReviewRepo)
	uc := NewReviewUseCase(repo, testLogger)
	repo.On("CreateReview", mock.Anything, mock.AnythingOfType("*biz.Review")).Return(nil).Twice()

	for _, rating := range []int{MinRating, MaxRating} {
		review, err := uc.SubmitReview(context.Background(), &Review{MovieID: 1, UserID: 2, Rating: rating})
		require.NoError(t, err)
		assert.Equal(t, rating, review.Rating)
	}
	repo.AssertExpectations(t)
}

func TestSubmitReviewWrapsStoreErrors(t *testing.T) {
	repo := new(mockReviewRepo)
	uc := NewReviewUseCase(repo, testLogger)
	repo.On("CreateReview", mock.Anything, mock.Anything).Return(ErrMissingReference)

	_, err := uc.SubmitReview(context.Background(), &Review{MovieID: 42, UserID: 1, Rating: 6})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingReference))
	assert.Contains(t, err.Error(), "failed to submit review")
}

func TestUpdateReviewRevalidatesRating(t *testing.T) {
	repo := new(mockReviewRepo)
	uc := NewReviewUseCase(repo, testLogger)

	_, err := uc.UpdateReview(context.Background(), &Review{ID: 1, Rating: 11})
	assert.True(t, errors.Is(err, ErrRatingOutOfRange))
	repo.AssertNotCalled(t, "UpdateReview", mock.Anything, mock.Anything)

	repo.On("UpdateReview", mock.Anything, mock.Anything).Return(nil).Once()
	_, err = uc.UpdateReview(context.Background(), &Review{ID: 1, Rating: 3})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestTopRated(t *testing.T) {
	repo := new(mockReviewRepo)
	uc := NewReviewUseCase(repo, testLogger)

	_, err := uc.TopRated(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	want := []*ReviewSummary{{MovieID: 1, Count: 2, Average: 8.5}}
	repo.On("TopRated", mock.Anything, 3).Return(want, nil)

	got, err := uc.TopRated(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
