package data

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/robincamp/moviecatalog/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm/clause"
)

const defaultPageSize = 10

type movieRepo struct {
	data *Data
	log  *log.Helper
}

// NewMovieRepo creates a new movie repository
func NewMovieRepo(data *Data, logger log.Logger) biz.MovieRepo {
	return &movieRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *movieRepo) CreateMovie(ctx context.Context, movie *biz.Movie) error {
	dbMovie := movieToModel(movie)
	if err := r.data.db.WithContext(ctx).Create(dbMovie).Error; err != nil {
		return fmt.Errorf("failed to create movie: %w", translateError(err))
	}
	movie.ID = dbMovie.ID
	movie.CreatedAt = dbMovie.CreatedAt
	return nil
}

func (r *movieRepo) GetMovie(ctx context.Context, id uint) (*biz.Movie, error) {
	var cached biz.Movie
	if r.data.cacheGet(ctx, movieCacheKey(id), &cached) {
		return &cached, nil
	}

	var dbMovie Movie
	if err := r.data.db.WithContext(ctx).First(&dbMovie, id).Error; err != nil {
		return nil, fmt.Errorf("movie %d: %w", id, translateError(err))
	}

	movie := movieToBiz(&dbMovie)
	r.data.cacheSet(ctx, movieCacheKey(id), movie)
	return movie, nil
}

// SearchByTitle matches the title exactly or by prefix; both forms can use idx_movies_title.
func (r *movieRepo) SearchByTitle(ctx context.Context, title string, prefix bool) ([]*biz.Movie, error) {
	db := r.data.db.WithContext(ctx).Model(&Movie{})
	if prefix {
		db = db.Where("title LIKE ? ESCAPE '!'", escapeLike(title)+"%")
	} else {
		db = db.Where("title = ?", title)
	}

	var dbMovies []Movie
	if err := db.Order("title").Order("id").Find(&dbMovies).Error; err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", translateError(err))
	}
	return moviesToBiz(dbMovies), nil
}

func (r *movieRepo) ListMovies(ctx context.Context, query *biz.MovieListQuery) (*biz.MoviePage, error) {
	// Decode cursor to get offset
	offset := 0
	if query.Cursor != nil && *query.Cursor != "" {
		var err error
		offset, err = decodeCursor(*query.Cursor)
		if err != nil {
			return nil, biz.ErrInvalidArgument.WithCause(fmt.Errorf("invalid cursor: %w", err))
		}
	}

	db := r.data.db.WithContext(ctx).Model(&Movie{})
	if query.TitlePrefix != nil && *query.TitlePrefix != "" {
		db = db.Where("title LIKE ? ESCAPE '!'", escapeLike(*query.TitlePrefix)+"%")
	}
	if query.Year != nil {
		db = db.Where("release_year = ?", *query.Year)
	}

	// Fetch limit+1 to detect if there are more pages
	limit := query.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	var dbMovies []Movie
	err := db.Order("id").Offset(offset).Limit(limit + 1).Find(&dbMovies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", translateError(err))
	}

	hasMore := len(dbMovies) > limit
	if hasMore {
		dbMovies = dbMovies[:limit]
	}

	result := &biz.MoviePage{
		Items: moviesToBiz(dbMovies),
	}
	if hasMore {
		nextCursor := encodeCursor(offset + limit)
		result.NextCursor = &nextCursor
	}
	return result, nil
}

func (r *movieRepo) UpdateMovie(ctx context.Context, movie *biz.Movie) error {
	db := r.data.db.WithContext(ctx)

	var existing Movie
	if err := db.First(&existing, movie.ID).Error; err != nil {
		return fmt.Errorf("movie %d: %w", movie.ID, translateError(err))
	}

	err := db.Model(&existing).Updates(map[string]interface{}{
		"title":        movie.Title,
		"release_year": movie.ReleaseYear,
		"description":  movie.Description,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", translateError(err))
	}
	movie.CreatedAt = existing.CreatedAt

	r.data.cacheDel(ctx, movieCacheKey(movie.ID))
	return nil
}

// DeleteMovie relies on the schema's cascades for media, genre links, reviews and credits.
func (r *movieRepo) DeleteMovie(ctx context.Context, id uint) error {
	result := r.data.db.WithContext(ctx).Delete(&Movie{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete movie: %w", translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("movie %d: %w", id, biz.ErrNotFound)
	}
	r.data.forgetMovie(ctx, id)
	return nil
}

func (r *movieRepo) AddMedia(ctx context.Context, media *biz.Media) error {
	dbMedia := &Media{
		MovieID: media.MovieID,
		Kind:    string(media.Kind),
		URL:     media.URL,
		Caption: media.Caption,
	}
	if err := r.data.db.WithContext(ctx).Omit(clause.Associations).Create(dbMedia).Error; err != nil {
		return fmt.Errorf("failed to add media: %w", translateError(err))
	}
	media.ID = dbMedia.ID
	media.CreatedAt = dbMedia.CreatedAt
	return nil
}

func (r *movieRepo) ListMedia(ctx context.Context, movieID uint) ([]*biz.Media, error) {
	var rows []Media
	err := r.data.db.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", translateError(err))
	}

	media := make([]*biz.Media, 0, len(rows))
	for i := range rows {
		media = append(media, &biz.Media{
			ID:        rows[i].ID,
			MovieID:   rows[i].MovieID,
			Kind:      biz.MediaKind(rows[i].Kind),
			URL:       rows[i].URL,
			Caption:   rows[i].Caption,
			CreatedAt: rows[i].CreatedAt,
		})
	}
	return media, nil
}

func (r *movieRepo) DeleteMedia(ctx context.Context, id uint) error {
	result := r.data.db.WithContext(ctx).Delete(&Media{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete media: %w", translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("media %d: %w", id, biz.ErrNotFound)
	}
	return nil
}

func (r *movieRepo) TagGenre(ctx context.Context, movieID, genreID uint) error {
	link := &MovieGenre{MovieID: movieID, GenreID: genreID}
	if err := r.data.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *movieRepo) UntagGenre(ctx context.Context, movieID, genreID uint) error {
	result := r.data.db.WithContext(ctx).
		Where("movie_id = ? AND genre_id = ?", movieID, genreID).
		Delete(&MovieGenre{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return biz.ErrNotFound
	}
	return nil
}

func (r *movieRepo) ListMovieGenres(ctx context.Context, movieID uint) ([]*biz.Term, error) {
	var rows []termRow
	err := r.data.db.WithContext(ctx).
		Table("genres").
		Select("genres.id, genres.name").
		Joins("JOIN movie_genres ON movie_genres.genre_id = genres.id").
		Where("movie_genres.movie_id = ?", movieID).
		Order("genres.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movie genres: %w", translateError(err))
	}
	return termsToBiz(rows), nil
}

func movieToModel(m *biz.Movie) *Movie {
	return &Movie{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func movieToBiz(m *Movie) *biz.Movie {
	return &biz.Movie{
		ID:          m.ID,
		Title:       m.Title,
		ReleaseYear: m.ReleaseYear,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

func moviesToBiz(rows []Movie) []*biz.Movie {
	movies := make([]*biz.Movie, 0, len(rows))
	for i := range rows {
		movies = append(movies, movieToBiz(&rows[i]))
	}
	return movies
}

// escapeLike escapes LIKE wildcards using '!' as the escape character, which
// every supported dialect accepts verbatim in an ESCAPE clause.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}

// encodeCursor encodes an offset into a base64 cursor string
func encodeCursor(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

// decodeCursor decodes a base64 cursor string back to an offset
func decodeCursor(cursor string) (int, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor encoding: %w", err)
	}

	offset, err := strconv.Atoi(string(decoded))
	if err != nil {
		return 0, fmt.Errorf("invalid cursor format: %w", err)
	}
	if offset < 0 {
		return 0, fmt.Errorf("invalid cursor offset %d", offset)
	}

	return offset, nil
}
