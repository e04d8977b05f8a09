package biz

import (
	"fmt"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/google/wire"
)

// ProviderSet is biz providers. The CLI only builds CatalogUseCase and
// ReviewUseCase; the other use cases are the library surface of the catalog.
var ProviderSet = wire.NewSet(
	NewUserUseCase,
	NewMovieUseCase,
	NewReviewUseCase,
	NewArtistUseCase,
	NewVocabularyUseCase,
	NewCatalogUseCase,
)

const (
	MinRating = 1
	MaxRating = 10
)

// Storage and validation errors. Match with errors.Is; the reason is what is compared.
var (
	ErrNotFound         = errors.NotFound("NOT_FOUND", "record not found")
	ErrDuplicate        = errors.Conflict("DUPLICATE", "record already exists")
	ErrMissingReference = errors.New(422, "MISSING_REFERENCE", "referenced record does not exist")
	ErrConstraint       = errors.New(422, "CONSTRAINT_VIOLATION", "check constraint violated")
	ErrInvalidArgument  = errors.BadRequest("INVALID_ARGUMENT", "invalid argument")
	// ErrRatingOutOfRange also matches ErrInvalidArgument through its cause.
	ErrRatingOutOfRange = errors.BadRequest("RATING_OUT_OF_RANGE",
		fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating)).WithCause(ErrInvalidArgument)
)

func invalidArgument(format string, args ...interface{}) error {
	return errors.BadRequest(ErrInvalidArgument.Reason, fmt.Sprintf(format, args...))
}
