package data

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	cacheTTL = 15 * time.Minute

	rankTopKey     = "rank:movies:top"
	rankPopularKey = "rank:movies:popular"
)

func movieCacheKey(id uint) string {
	return fmt.Sprintf("movie:%d", id)
}

func reviewSummaryCacheKey(movieID uint) string {
	return fmt.Sprintf("review:summary:%d", movieID)
}

// cacheGet decodes a cached JSON value into v. It reports false on a miss or
// when redis is not configured.
func (d *Data) cacheGet(ctx context.Context, key string, v interface{}) bool {
	if d.rdb == nil {
		return false
	}
	cached, err := d.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), v); err != nil {
		d.log.Warnf("dropping undecodable cache entry %s: %v", key, err)
		d.rdb.Del(ctx, key)
		return false
	}
	d.log.Debugf("cache hit for %s", key)
	return true
}

func (d *Data) cacheSet(ctx context.Context, key string, v interface{}) {
	if d.rdb == nil {
		return
	}
	if data, err := json.Marshal(v); err == nil {
		d.rdb.Set(ctx, key, data, cacheTTL)
	}
}

func (d *Data) cacheDel(ctx context.Context, keys ...string) {
	if d.rdb == nil || len(keys) == 0 {
		return
	}
	d.rdb.Del(ctx, keys...)
}

// refreshRanking recomputes one movie's entries in the redis rankings
func (d *Data) refreshRanking(ctx context.Context, movieID uint) {
	if d.rdb == nil {
		return
	}

	var result struct {
		Average float64
		Count   int64
	}
	err := d.db.WithContext(ctx).
		Model(&Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("movie_id = ?", movieID).
		Scan(&result).Error
	if err != nil {
		d.log.Warnf("failed to get aggregate for ranking update: %v", err)
		return
	}

	member := strconv.FormatUint(uint64(movieID), 10)
	if result.Count == 0 {
		d.rdb.ZRem(ctx, rankTopKey, member)
		d.rdb.ZRem(ctx, rankPopularKey, member)
		return
	}

	// Update popular movies ranking (by review count)
	d.rdb.ZAdd(ctx, rankPopularKey, redis.Z{
		Score:  float64(result.Count),
		Member: member,
	})
	// Update top-rated movies ranking (by average rating)
	d.rdb.ZAdd(ctx, rankTopKey, redis.Z{
		Score:  result.Average,
		Member: member,
	})
}

// rebuildRankings replaces both rankings with the aggregates of every reviewed movie
func (d *Data) rebuildRankings(ctx context.Context) error {
	var rows []struct {
		MovieID uint
		Count   int64
		Average float64
	}
	err := d.db.WithContext(ctx).
		Model(&Review{}).
		Select("movie_id, COUNT(*) AS count, AVG(rating) AS average").
		Group("movie_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	pipe := d.rdb.TxPipeline()
	pipe.Del(ctx, rankTopKey, rankPopularKey)
	for _, row := range rows {
		member := strconv.FormatUint(uint64(row.MovieID), 10)
		pipe.ZAdd(ctx, rankTopKey, redis.Z{Score: row.Average, Member: member})
		pipe.ZAdd(ctx, rankPopularKey, redis.Z{Score: float64(row.Count), Member: member})
	}
	_, err = pipe.Exec(ctx)
	return err
}

// forgetMovie drops every cached value and ranking entry of a movie
func (d *Data) forgetMovie(ctx context.Context, movieID uint) {
	if d.rdb == nil {
		return
	}
	d.cacheDel(ctx, movieCacheKey(movieID), reviewSummaryCacheKey(movieID))
	member := strconv.FormatUint(uint64(movieID), 10)
	d.rdb.ZRem(ctx, rankTopKey, member)
	d.rdb.ZRem(ctx, rankPopularKey, member)
}

// reviewsChanged invalidates what depends on the reviews of a movie
func (d *Data) reviewsChanged(ctx context.Context, movieID uint) {
	if d.rdb == nil {
		return
	}
	d.cacheDel(ctx, reviewSummaryCacheKey(movieID))
	d.refreshRanking(ctx, movieID)
}

// flushCache removes the rankings and every cached movie and review summary
func (d *Data) flushCache(ctx context.Context) {
	if d.rdb == nil {
		return
	}
	keys := []string{rankTopKey, rankPopularKey}
	for _, pattern := range []string{"movie:*", "review:summary:*"} {
		iter := d.rdb.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			d.log.Warnf("failed to scan cache keys %s: %v", pattern, err)
		}
	}
	d.rdb.Del(ctx, keys...)
}
