package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/robincamp/moviecatalog/internal/biz"
)

const topRatedLimit = 5

// Commands understood by CatalogService.Run
const (
	CommandMigrate = "migrate"
	CommandSeed    = "seed"
	CommandReset   = "reset"
	CommandReport  = "report"
)

// CatalogService is the operator surface of the catalog: schema lifecycle and reporting
type CatalogService struct {
	catalogUC *biz.CatalogUseCase
	reviewUC  *biz.ReviewUseCase
	log       *log.Helper
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogUC *biz.CatalogUseCase, reviewUC *biz.ReviewUseCase, logger log.Logger) *CatalogService {
	return &CatalogService{
		catalogUC: catalogUC,
		reviewUC:  reviewUC,
		log:       log.NewHelper(log.With(logger, "module", "service/catalog")),
	}
}

// Commands lists the accepted command names in display order
func Commands() []string {
	return []string{CommandMigrate, CommandSeed, CommandReset, CommandReport}
}

// Run executes one command and writes its human-readable output to out
func (s *CatalogService) Run(ctx context.Context, command string, out io.Writer) error {
	s.log.WithContext(ctx).Debugf("running %s", command)

	switch command {
	case CommandMigrate:
		if err := s.catalogUC.Migrate(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "schema is up to date")
		return nil
	case CommandSeed:
		counts, err := s.catalogUC.Seed(ctx)
		if err != nil {
			return err
		}
		writeCounts(out, counts)
		return nil
	case CommandReset:
		counts, err := s.catalogUC.Reset(ctx)
		if err != nil {
			return err
		}
		writeCounts(out, counts)
		return nil
	case CommandReport:
		return s.report(ctx, out)
	}
	return errors.BadRequest("UNKNOWN_COMMAND",
		fmt.Sprintf("unknown command %q, expected one of: %s", command, strings.Join(Commands(), ", ")))
}

func (s *CatalogService) report(ctx context.Context, out io.Writer) error {
	reports, err := s.catalogUC.Report(ctx)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Fprintln(out, "catalog is empty")
		return nil
	}

	titles := make(map[uint]string, len(reports))
	for _, r := range reports {
		titles[r.Movie.ID] = r.Movie.Title
		writeMovieReport(out, r)
	}

	top, err := s.reviewUC.TopRated(ctx, topRatedLimit)
	if err != nil {
		return err
	}
	if len(top) == 0 {
		return nil
	}
	fmt.Fprintln(out, "Top rated:")
	for i, summary := range top {
		fmt.Fprintf(out, "  %d. %s (%.1f from %d reviews)\n", i+1, titles[summary.MovieID], summary.Average, summary.Count)
	}
	return nil
}

func writeCounts(out io.Writer, counts []biz.TableCount) {
	var total int64
	for _, c := range counts {
		fmt.Fprintf(out, "%-20s %d\n", c.Table, c.Rows)
		total += c.Rows
	}
	fmt.Fprintf(out, "%-20s %d\n", "total", total)
}

func writeMovieReport(out io.Writer, r *biz.MovieReport) {
	year := "unknown year"
	if r.Movie.ReleaseYear != nil {
		year = fmt.Sprint(*r.Movie.ReleaseYear)
	}
	fmt.Fprintf(out, "#%d %s (%s)\n", r.Movie.ID, r.Movie.Title, year)

	genres := make([]string, 0, len(r.Genres))
	for _, g := range r.Genres {
		genres = append(genres, g.Name)
	}
	sort.Strings(genres)
	if len(genres) > 0 {
		fmt.Fprintf(out, "  genres:  %s\n", strings.Join(genres, ", "))
	}

	var images, videos int
	for _, m := range r.Media {
		switch m.Kind {
		case biz.MediaImage:
			images++
		case biz.MediaVideo:
			videos++
		}
	}
	fmt.Fprintf(out, "  media:   %d images, %d videos\n", images, videos)

	if r.Summary != nil && r.Summary.Count > 0 {
		fmt.Fprintf(out, "  reviews: %d, average %.1f\n", r.Summary.Count, r.Summary.Average)
	} else {
		fmt.Fprintln(out, "  reviews: none")
	}

	for _, c := range r.Credits {
		line := fmt.Sprintf("  credit:  %s, %s", c.ArtistName, c.RoleTypeName)
		if c.CharacterName != nil {
			line += fmt.Sprintf(" as %s", *c.CharacterName)
		}
		fmt.Fprintln(out, line)
	}
}
