package data

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"

	"github.com/robincamp/moviecatalog/internal/biz"
	"github.com/robincamp/moviecatalog/internal/conf"
)

// newCachedData is newSeededData backed by an in-process redis.
func newCachedData(t *testing.T) (*Data, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	d, cleanup, err := NewData(&conf.Data{
		Database: &conf.Database{
			Driver: DriverSQLite,
			Source: "file::memory:?_foreign_keys=1",
		},
		Redis: &conf.Redis{Addr: mr.Addr()},
	}, testLogger)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NotNil(t, d.rdb)

	schema := NewSchemaRepo(d, testLogger)
	require.NoError(t, schema.Migrate(context.Background()))
	_, err = schema.Seed(context.Background())
	require.NoError(t, err)
	return d, mr
}

func TestSeedPopulatesRankings(t *testing.T) {
	_, mr := newCachedData(t)

	members, err := mr.ZMembers(rankTopKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, members)

	score, err := mr.ZScore(rankTopKey, "1")
	require.NoError(t, err)
	assert.InDelta(t, 8.5, score, 0.001)

	count, err := mr.ZScore(rankPopularKey, "2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGetMovieReadsThroughCache(t *testing.T) {
	d, mr := newCachedData(t)
	repo := NewMovieRepo(d, testLogger)
	ctx := context.Background()

	movie, err := repo.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Galactic Voyage", movie.Title)
	assert.True(t, mr.Exists(movieCacheKey(1)))

	// a write behind the repository is not seen while the entry lives
	require.NoError(t, d.db.Model(&Movie{}).Where("id = ?", 1).Update("title", "Renamed Offline").Error)
	movie, err = repo.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Galactic Voyage", movie.Title)

	movie.Title = "The Galactic Voyage: Director's Cut"
	require.NoError(t, repo.UpdateMovie(ctx, movie))
	assert.False(t, mr.Exists(movieCacheKey(1)))

	movie, err = repo.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "The Galactic Voyage: Director's Cut", movie.Title)
}

func TestSummaryCacheInvalidation(t *testing.T) {
	d, mr := newCachedData(t)
	reviews := NewReviewRepo(d, testLogger)
	users := NewUserRepo(d, testLogger)
	ctx := context.Background()

	summary, err := reviews.Summary(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.Count)
	_, err = reviews.Summary(ctx, 1)
	require.NoError(t, err)
	assert.True(t, mr.Exists(reviewSummaryCacheKey(2)))

	require.NoError(t, d.db.Omit(clause.Associations).Create(&Review{MovieID: 2, UserID: 2, Rating: 1}).Error)
	summary, err = reviews.Summary(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.Count, "served from cache")

	require.NoError(t, reviews.CreateReview(ctx, &biz.Review{MovieID: 2, UserID: 2, Rating: 10}))
	assert.False(t, mr.Exists(reviewSummaryCacheKey(2)))
	summary, err = reviews.Summary(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, summary.Count)
	assert.InDelta(t, 6.0, summary.Average, 0.001)

	require.NoError(t, users.DeleteUser(ctx, 2))
	assert.False(t, mr.Exists(reviewSummaryCacheKey(1)))
	assert.False(t, mr.Exists(reviewSummaryCacheKey(2)))

	summary, err = reviews.Summary(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, summary.Count)
	assert.InDelta(t, 9.0, summary.Average, 0.001)

	score, err := mr.ZScore(rankTopKey, "2")
	require.NoError(t, err)
	assert.InDelta(t, 7.0, score, 0.001)
}

func TestUpdateReviewRefreshesRanking(t *testing.T) {
	d, mr := newCachedData(t)
	reviews := NewReviewRepo(d, testLogger)
	ctx := context.Background()

	_, err := reviews.Summary(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, reviews.UpdateReview(ctx, &biz.Review{ID: 2, Rating: 10}))
	assert.False(t, mr.Exists(reviewSummaryCacheKey(1)))

	score, err := mr.ZScore(rankTopKey, "1")
	require.NoError(t, err)
	assert.InDelta(t, 9.5, score, 0.001)
}

func TestDeleteMovieForgetsCacheAndRanking(t *testing.T) {
	d, mr := newCachedData(t)
	movies := NewMovieRepo(d, testLogger)
	ctx := context.Background()

	_, err := movies.GetMovie(ctx, 1)
	require.NoError(t, err)
	_, err = NewReviewRepo(d, testLogger).Summary(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, movies.DeleteMovie(ctx, 1))
	assert.False(t, mr.Exists(movieCacheKey(1)))
	assert.False(t, mr.Exists(reviewSummaryCacheKey(1)))

	for _, key := range []string{rankTopKey, rankPopularKey} {
		members, err := mr.ZMembers(key)
		require.NoError(t, err)
		assert.Equal(t, []string{"2"}, members, key)
	}
}

func TestDropFlushesCache(t *testing.T) {
	d, mr := newCachedData(t)
	ctx := context.Background()

	_, err := NewMovieRepo(d, testLogger).GetMovie(ctx, 2)
	require.NoError(t, err)
	_, err = NewReviewRepo(d, testLogger).Summary(ctx, 2)
	require.NoError(t, err)
	mr.Set("unrelated", "kept")

	require.NoError(t, NewSchemaRepo(d, testLogger).Drop(ctx))
	for _, key := range []string{movieCacheKey(2), reviewSummaryCacheKey(2), rankTopKey, rankPopularKey} {
		assert.False(t, mr.Exists(key), key)
	}
	assert.True(t, mr.Exists("unrelated"))
}

func TestTopRatedServedFromRanking(t *testing.T) {
	d, mr := newCachedData(t)
	reviews := NewReviewRepo(d, testLogger)

	// only the ranking knows this score
	_, err := mr.ZAdd(rankTopKey, 9.9, "2")
	require.NoError(t, err)

	top, err := reviews.TopRated(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.EqualValues(t, 2, top[0].MovieID)
	assert.InDelta(t, 9.9, top[0].Average, 0.001)
	assert.EqualValues(t, 1, top[0].Count)
	assert.EqualValues(t, 1, top[1].MovieID)
}

func TestTopRatedRebuildsIncompleteRanking(t *testing.T) {
	// the catalog is seeded before redis becomes reachable
	d := newSeededData(t)
	mr := miniredis.RunT(t)
	d.rdb = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { d.rdb.Close() })

	reviews := NewReviewRepo(d, testLogger)
	ctx := context.Background()
	require.NoError(t, reviews.CreateReview(ctx, &biz.Review{MovieID: 2, UserID: 2, Rating: 5}))

	members, err := mr.ZMembers(rankTopKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, members)

	top, err := reviews.TopRated(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.EqualValues(t, 1, top[0].MovieID)
	assert.InDelta(t, 8.5, top[0].Average, 0.001)
	assert.EqualValues(t, 2, top[0].Count)
	assert.EqualValues(t, 2, top[1].MovieID)
	assert.InDelta(t, 6.0, top[1].Average, 0.001)
	assert.EqualValues(t, 2, top[1].Count)

	members, err = mr.ZMembers(rankPopularKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"1", "2"}, members)
}
