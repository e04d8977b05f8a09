package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// MovieUseCase handles movie, media and genre tagging logic
type MovieUseCase struct {
	repo MovieRepo
	log  *log.Helper
}

// NewMovieUseCase creates a new MovieUseCase instance
func NewMovieUseCase(repo MovieRepo, logger log.Logger) *MovieUseCase {
	return &MovieUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// CreateMovie validates and stores a new movie
func (uc *MovieUseCase) CreateMovie(ctx context.Context, movie *Movie) (*Movie, error) {
	movie.Title = strings.TrimSpace(movie.Title)
	if movie.Title == "" {
		return nil, invalidArgument("title is required")
	}
	if err := uc.repo.CreateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to create movie: %w", err)
	}
	uc.log.WithContext(ctx).Infof("created movie %d %q", movie.ID, movie.Title)
	return movie, nil
}

// GetMovie retrieves a movie by id
func (uc *MovieUseCase) GetMovie(ctx context.Context, id uint) (*Movie, error) {
	movie, err := uc.repo.GetMovie(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return movie, nil
}

// SearchByTitle looks movies up by exact title, or by title prefix when prefix is set
func (uc *MovieUseCase) SearchByTitle(ctx context.Context, title string, prefix bool) ([]*Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalidArgument("title is required")
	}
	movies, err := uc.repo.SearchByTitle(ctx, title, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	return movies, nil
}

// ListMovies retrieves a paginated list of movies based on filters
func (uc *MovieUseCase) ListMovies(ctx context.Context, query *MovieListQuery) (*MoviePage, error) {
	if query == nil {
		query = &MovieListQuery{}
	}
	if query.Limit < 0 {
		return nil, invalidArgument("limit must not be negative")
	}
	page, err := uc.repo.ListMovies(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return page, nil
}

// UpdateMovie rewrites title, year and description of an existing movie.
// The title stays mandatory.
func (uc *MovieUseCase) UpdateMovie(ctx context.Context, movie *Movie) (*Movie, error) {
	movie.Title = strings.TrimSpace(movie.Title)
	if movie.Title == "" {
		return nil, invalidArgument("title is required")
	}
	if err := uc.repo.UpdateMovie(ctx, movie); err != nil {
		return nil, fmt.Errorf("failed to update movie: %w", err)
	}
	return movie, nil
}

// DeleteMovie removes a movie; media, genre tags, reviews and credits go with it
func (uc *MovieUseCase) DeleteMovie(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteMovie(ctx, id); err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	uc.log.WithContext(ctx).Infof("deleted movie %d", id)
	return nil
}

// AttachMedia stores an image or video for a movie
func (uc *MovieUseCase) AttachMedia(ctx context.Context, media *Media) (*Media, error) {
	if !media.Kind.Valid() {
		return nil, invalidArgument("media kind must be %q or %q, got %q", MediaImage, MediaVideo, media.Kind)
	}
	media.URL = strings.TrimSpace(media.URL)
	if media.URL == "" {
		return nil, invalidArgument("media url is required")
	}
	if err := uc.repo.AddMedia(ctx, media); err != nil {
		return nil, fmt.Errorf("failed to attach media: %w", err)
	}
	return media, nil
}

// ListMedia returns the media of a movie in insertion order
func (uc *MovieUseCase) ListMedia(ctx context.Context, movieID uint) ([]*Media, error) {
	media, err := uc.repo.ListMedia(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	return media, nil
}

// DetachMedia deletes one media row
func (uc *MovieUseCase) DetachMedia(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteMedia(ctx, id); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}
	return nil
}

// TagGenre links a movie to a genre
func (uc *MovieUseCase) TagGenre(ctx context.Context, movieID, genreID uint) error {
	if err := uc.repo.TagGenre(ctx, movieID, genreID); err != nil {
		return fmt.Errorf("failed to tag movie %d with genre %d: %w", movieID, genreID, err)
	}
	return nil
}

// UntagGenre removes a movie/genre link
func (uc *MovieUseCase) UntagGenre(ctx context.Context, movieID, genreID uint) error {
	if err := uc.repo.UntagGenre(ctx, movieID, genreID); err != nil {
		return fmt.Errorf("failed to untag movie %d from genre %d: %w", movieID, genreID, err)
	}
	return nil
}

// ListGenres returns the genres a movie is tagged with
func (uc *MovieUseCase) ListGenres(ctx context.Context, movieID uint) ([]*Term, error) {
	genres, err := uc.repo.ListMovieGenres(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}
