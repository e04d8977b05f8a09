package biz

import (
	"context"
	"time"
)

// User is a reviewer account
type User struct {
	ID        uint
	Username  string
	Email     *string
	CreatedAt time.Time
}

// Movie is the catalog root entity
type Movie struct {
	ID          uint
	Title       string
	ReleaseYear *int
	Description string
	CreatedAt   time.Time
}

// MediaKind is the kind of asset attached to a movie
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Valid reports whether k is one of the stored kinds.
func (k MediaKind) Valid() bool {
	return k == MediaImage || k == MediaVideo
}

// Media is an image or video attached to a movie
type Media struct {
	ID        uint
	MovieID   uint
	Kind      MediaKind
	URL       string
	Caption   *string
	CreatedAt time.Time
}

// Vocabulary names one of the controlled vocabulary tables.
type Vocabulary string

const (
	VocabularyGenre    Vocabulary = "genre"
	VocabularySkill    Vocabulary = "skill"
	VocabularyRoleType Vocabulary = "role_type"
)

// Term is a single entry of a controlled vocabulary
type Term struct {
	ID   uint
	Name string
}

// Artist is a cast or crew member
type Artist struct {
	ID        uint
	Name      string
	BirthDate *time.Time
	Bio       string
	CreatedAt time.Time
}

// Review is a user-authored rating of a movie
type Review struct {
	ID        uint
	MovieID   uint
	UserID    uint
	Rating    int
	Title     *string
	Body      *string
	CreatedAt time.Time
}

// ReviewSummary aggregates the reviews of one movie
type ReviewSummary struct {
	MovieID uint    `json:"movie_id"`
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

// Credit is one (movie, artist, role type, character) billing entry.
// A nil CharacterName is stored as the empty string.
type Credit struct {
	MovieID       uint
	ArtistID      uint
	RoleTypeID    uint
	CharacterName *string
	CreditOrder   *int

	// Populated on reads only
	ArtistName   string
	RoleTypeName string
}

// MovieListQuery filters and pages ListMovies
type MovieListQuery struct {
	TitlePrefix *string
	Year        *int
	Limit       int
	Cursor      *string
}

// MoviePage is one page of ListMovies
type MoviePage struct {
	Items      []*Movie
	NextCursor *string
}

// TableCount is the number of rows written to one table.
type TableCount struct {
	Table string
	Rows  int64
}

// MovieReport is the per-movie view printed by the report command
type MovieReport struct {
	Movie   *Movie
	Genres  []*Term
	Media   []*Media
	Summary *ReviewSummary
	Credits []*Credit
}

// UserRepo defines the repository interface for users
type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// MovieRepo defines the repository interface for movies, their media and genre tags
type MovieRepo interface {
	CreateMovie(ctx context.Context, movie *Movie) error
	GetMovie(ctx context.Context, id uint) (*Movie, error)
	SearchByTitle(ctx context.Context, title string, prefix bool) ([]*Movie, error)
	ListMovies(ctx context.Context, query *MovieListQuery) (*MoviePage, error)
	UpdateMovie(ctx context.Context, movie *Movie) error
	DeleteMovie(ctx context.Context, id uint) error

	AddMedia(ctx context.Context, media *Media) error
	ListMedia(ctx context.Context, movieID uint) ([]*Media, error)
	DeleteMedia(ctx context.Context, id uint) error

	TagGenre(ctx context.Context, movieID, genreID uint) error
	UntagGenre(ctx context.Context, movieID, genreID uint) error
	ListMovieGenres(ctx context.Context, movieID uint) ([]*Term, error)
}

// VocabularyRepo defines the repository interface for genres, skills and role types
type VocabularyRepo interface {
	CreateTerm(ctx context.Context, vocab Vocabulary, term *Term) error
	ListTerms(ctx context.Context, vocab Vocabulary) ([]*Term, error)
	GetTermByName(ctx context.Context, vocab Vocabulary, name string) (*Term, error)
	DeleteTerm(ctx context.Context, vocab Vocabulary, id uint) error
}

// ArtistRepo defines the repository interface for artists, their skills and credits
type ArtistRepo interface {
	CreateArtist(ctx context.Context, artist *Artist) error
	GetArtist(ctx context.Context, id uint) (*Artist, error)
	DeleteArtist(ctx context.Context, id uint) error

	AddSkill(ctx context.Context, artistID, skillID uint) error
	RemoveSkill(ctx context.Context, artistID, skillID uint) error
	ListArtistSkills(ctx context.Context, artistID uint) ([]*Term, error)

	AddCredit(ctx context.Context, credit *Credit) error
	RemoveCredit(ctx context.Context, credit *Credit) error
	ListCredits(ctx context.Context, movieID uint) ([]*Credit, error)
}

// ReviewRepo defines the repository interface for reviews
type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) error
	GetReview(ctx context.Context, id uint) (*Review, error)
	ListReviews(ctx context.Context, movieID uint) ([]*Review, error)
	UpdateReview(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, id uint) error
	Summary(ctx context.Context, movieID uint) (*ReviewSummary, error)
	TopRated(ctx context.Context, n int) ([]*ReviewSummary, error)
}

// SchemaRepo creates, drops and seeds the catalog schema
type SchemaRepo interface {
	Migrate(ctx context.Context) error
	Drop(ctx context.Context) error
	Seed(ctx context.Context) ([]TableCount, error)
}
