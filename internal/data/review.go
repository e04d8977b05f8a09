package data

import (
	"context"
	"fmt"
	"strconv"

	"github.com/robincamp/moviecatalog/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm/clause"
)

type reviewRepo struct {
	data *Data
	log  *log.Helper
}

// NewReviewRepo creates a new review repository
func NewReviewRepo(data *Data, logger log.Logger) biz.ReviewRepo {
	return &reviewRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *reviewRepo) CreateReview(ctx context.Context, review *biz.Review) error {
	row := &Review{
		ID:      review.ID,
		MovieID: review.MovieID,
		UserID:  review.UserID,
		Rating:  review.Rating,
		Title:   review.Title,
		Body:    review.Body,
	}
	if err := r.data.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", translateError(err))
	}
	review.ID = row.ID
	review.CreatedAt = row.CreatedAt

	r.data.reviewsChanged(ctx, review.MovieID)
	return nil
}

func (r *reviewRepo) GetReview(ctx context.Context, id uint) (*biz.Review, error) {
	var row Review
	if err := r.data.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("review %d: %w", id, translateError(err))
	}
	return reviewToBiz(&row), nil
}

// ListReviews is served by idx_reviews_movie.
func (r *reviewRepo) ListReviews(ctx context.Context, movieID uint) ([]*biz.Review, error) {
	var rows []Review
	err := r.data.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", translateError(err))
	}

	reviews := make([]*biz.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, reviewToBiz(&rows[i]))
	}
	return reviews, nil
}

func (r *reviewRepo) UpdateReview(ctx context.Context, review *biz.Review) error {
	db := r.data.db.WithContext(ctx)

	var existing Review
	if err := db.First(&existing, review.ID).Error; err != nil {
		return fmt.Errorf("review %d: %w", review.ID, translateError(err))
	}

	err := db.Model(&existing).Updates(map[string]interface{}{
		"rating": review.Rating,
		"title":  review.Title,
		"body":   review.Body,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update review: %w", translateError(err))
	}

	review.MovieID = existing.MovieID
	review.UserID = existing.UserID
	review.CreatedAt = existing.CreatedAt
	r.data.reviewsChanged(ctx, existing.MovieID)
	return nil
}

func (r *reviewRepo) DeleteReview(ctx context.Context, id uint) error {
	db := r.data.db.WithContext(ctx)

	var existing Review
	if err := db.First(&existing, id).Error; err != nil {
		return fmt.Errorf("review %d: %w", id, translateError(err))
	}
	if err := db.Delete(&existing).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", translateError(err))
	}

	r.data.reviewsChanged(ctx, existing.MovieID)
	return nil
}

func (r *reviewRepo) Summary(ctx context.Context, movieID uint) (*biz.ReviewSummary, error) {
	var cached biz.ReviewSummary
	if r.data.cacheGet(ctx, reviewSummaryCacheKey(movieID), &cached) {
		return &cached, nil
	}

	var result struct {
		Count   int64
		Average float64
	}
	err := r.data.db.WithContext(ctx).
		Model(&Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("movie_id = ?", movieID).
		Scan(&result).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get review summary: %w", translateError(err))
	}

	summary := &biz.ReviewSummary{
		MovieID: movieID,
		Count:   result.Count,
		Average: result.Average,
	}
	r.data.cacheSet(ctx, reviewSummaryCacheKey(movieID), summary)
	return summary, nil
}

// TopRated reads the redis ranking when it covers every reviewed movie and falls back to the database.
func (r *reviewRepo) TopRated(ctx context.Context, n int) ([]*biz.ReviewSummary, error) {
	if top := r.topRatedFromRanking(ctx, n); top != nil {
		return top, nil
	}

	var rows []struct {
		MovieID uint
		Count   int64
		Average float64
	}
	err := r.data.db.WithContext(ctx).
		Model(&Review{}).
		Select("movie_id, COUNT(*) AS count, AVG(rating) AS average").
		Group("movie_id").
		Order("average DESC").
		Order("movie_id").
		Limit(n).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank movies: %w", translateError(err))
	}

	top := make([]*biz.ReviewSummary, 0, len(rows))
	for _, row := range rows {
		top = append(top, &biz.ReviewSummary{MovieID: row.MovieID, Count: row.Count, Average: row.Average})
	}
	return top, nil
}

// topRatedFromRanking returns nil when the caller has to use the database. A
// ranking that does not hold every reviewed movie is rebuilt before it is read.
func (r *reviewRepo) topRatedFromRanking(ctx context.Context, n int) []*biz.ReviewSummary {
	if r.data.rdb == nil {
		return nil
	}

	var reviewed int64
	if err := r.data.db.WithContext(ctx).Model(&Review{}).Distinct("movie_id").Count(&reviewed).Error; err != nil {
		r.log.Warnf("failed to count reviewed movies: %v", err)
		return nil
	}
	if reviewed == 0 {
		return nil
	}
	if !r.rankingComplete(ctx, reviewed) {
		if err := r.data.rebuildRankings(ctx); err != nil {
			r.log.Warnf("failed to rebuild rankings: %v", err)
			return nil
		}
	}

	entries, err := r.data.rdb.ZRevRangeWithScores(ctx, rankTopKey, 0, int64(n-1)).Result()
	if err != nil || len(entries) == 0 {
		return nil
	}

	members := make([]string, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			return nil
		}
		members = append(members, member)
	}
	counts, err := r.data.rdb.ZMScore(ctx, rankPopularKey, members...).Result()
	if err != nil || len(counts) != len(entries) {
		return nil
	}

	top := make([]*biz.ReviewSummary, 0, len(entries))
	for i, e := range entries {
		id, err := strconv.ParseUint(members[i], 10, 64)
		if err != nil {
			r.log.Warnf("ignoring ranking member %q: %v", members[i], err)
			continue
		}
		top = append(top, &biz.ReviewSummary{
			MovieID: uint(id),
			Count:   int64(counts[i]),
			Average: e.Score,
		})
	}
	return top
}

func (r *reviewRepo) rankingComplete(ctx context.Context, reviewed int64) bool {
	for _, key := range []string{rankTopKey, rankPopularKey} {
		n, err := r.data.rdb.ZCard(ctx, key).Result()
		if err != nil || n != reviewed {
			return false
		}
	}
	return true
}

func reviewToBiz(row *Review) *biz.Review {
	return &biz.Review{
		ID:        row.ID,
		MovieID:   row.MovieID,
		UserID:    row.UserID,
		Rating:    row.Rating,
		Title:     row.Title,
		Body:      row.Body,
		CreatedAt: row.CreatedAt,
	}
}
