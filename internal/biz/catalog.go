package biz

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
)

const reportPageSize = 50

// CatalogUseCase drives schema lifecycle (migrate, drop, seed) and the catalog report
type CatalogUseCase struct {
	schema  SchemaRepo
	movies  MovieRepo
	reviews ReviewRepo
	artists ArtistRepo
	log     *log.Helper
}

// NewCatalogUseCase creates a new CatalogUseCase instance
func NewCatalogUseCase(schema SchemaRepo, movies MovieRepo, reviews ReviewRepo, artists ArtistRepo, logger log.Logger) *CatalogUseCase {
	return &CatalogUseCase{
		schema:  schema,
		movies:  movies,
		reviews: reviews,
		artists: artists,
		log:     log.NewHelper(logger),
	}
}

// Migrate creates every table and index that does not exist yet
func (uc *CatalogUseCase) Migrate(ctx context.Context) error {
	if err := uc.schema.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	uc.log.WithContext(ctx).Info("schema migrated")
	return nil
}

// Drop removes every catalog table
func (uc *CatalogUseCase) Drop(ctx context.Context) error {
	if err := uc.schema.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop schema: %w", err)
	}
	uc.log.WithContext(ctx).Warn("schema dropped")
	return nil
}

// Seed inserts the fixture rows into an empty catalog
func (uc *CatalogUseCase) Seed(ctx context.Context) ([]TableCount, error) {
	counts, err := uc.schema.Seed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	for _, c := range counts {
		uc.log.WithContext(ctx).Infof("seeded %s: %d rows", c.Table, c.Rows)
	}
	return counts, nil
}

// Reset rebuilds the catalog from scratch: drop, migrate, seed
func (uc *CatalogUseCase) Reset(ctx context.Context) ([]TableCount, error) {
	if err := uc.Drop(ctx); err != nil {
		return nil, err
	}
	if err := uc.Migrate(ctx); err != nil {
		return nil, err
	}
	return uc.Seed(ctx)
}

// Report collects genres, media, review summary and credits for every movie
func (uc *CatalogUseCase) Report(ctx context.Context) ([]*MovieReport, error) {
	var (
		reports []*MovieReport
		cursor  *string
	)
	for {
		page, err := uc.movies.ListMovies(ctx, &MovieListQuery{Limit: reportPageSize, Cursor: cursor})
		if err != nil {
			return nil, fmt.Errorf("failed to list movies: %w", err)
		}
		for _, movie := range page.Items {
			report, err := uc.movieReport(ctx, movie)
			if err != nil {
				return nil, err
			}
			reports = append(reports, report)
		}
		if page.NextCursor == nil {
			return reports, nil
		}
		cursor = page.NextCursor
	}
}

func (uc *CatalogUseCase) movieReport(ctx context.Context, movie *Movie) (*MovieReport, error) {
	genres, err := uc.movies.ListMovieGenres(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres of movie %d: %w", movie.ID, err)
	}
	media, err := uc.movies.ListMedia(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media of movie %d: %w", movie.ID, err)
	}
	summary, err := uc.reviews.Summary(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reviews of movie %d: %w", movie.ID, err)
	}
	credits, err := uc.artists.ListCredits(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits of movie %d: %w", movie.ID, err)
	}
	return &MovieReport{
		Movie:   movie,
		Genres:  genres,
		Media:   media,
		Summary: summary,
		Credits: credits,
	}, nil
}
