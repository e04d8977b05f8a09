package biz

import (
	"context"
	"io"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/mock"
)

var testLogger = log.NewStdLogger(io.Discard)

type mockMovieRepo struct{ mock.Mock }

func (m *mockMovieRepo) CreateMovie(ctx context.Context, movie *Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) GetMovie(ctx context.Context, id uint) (*Movie, error) {
	args := m.Called(ctx, id)
	movie, _ := args.Get(0).(*Movie)
	return movie, args.Error(1)
}

func (m *mockMovieRepo) SearchByTitle(ctx context.Context, title string, prefix bool) ([]*Movie, error) {
	args := m.Called(ctx, title, prefix)
	movies, _ := args.Get(0).([]*Movie)
	return movies, args.Error(1)
}

func (m *mockMovieRepo) ListMovies(ctx context.Context, query *MovieListQuery) (*MoviePage, error) {
	args := m.Called(ctx, query)
	page, _ := args.Get(0).(*MoviePage)
	return page, args.Error(1)
}

func (m *mockMovieRepo) UpdateMovie(ctx context.Context, movie *Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieRepo) DeleteMovie(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMovieRepo) AddMedia(ctx context.Context, media *Media) error {
	return m.Called(ctx, media).Error(0)
}

func (m *mockMovieRepo) ListMedia(ctx context.Context, movieID uint) ([]*Media, error) {
	args := m.Called(ctx, movieID)
	media, _ := args.Get(0).([]*Media)
	return media, args.Error(1)
}

func (m *mockMovieRepo) DeleteMedia(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockMovieRepo) TagGenre(ctx context.Context, movieID, genreID uint) error {
	return m.Called(ctx, movieID, genreID).Error(0)
}

func (m *mockMovieRepo) UntagGenre(ctx context.Context, movieID, genreID uint) error {
	return m.Called(ctx, movieID, genreID).Error(0)
}

func (m *mockMovieRepo) ListMovieGenres(ctx context.Context, movieID uint) ([]*Term, error) {
	args := m.Called(ctx, movieID)
	terms, _ := args.Get(0).([]*Term)
	return terms, args.Error(1)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) CreateReview(ctx context.Context, review *Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) GetReview(ctx context.Context, id uint) (*Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*Review)
	return review, args.Error(1)
}

func (m *mockReviewRepo) ListReviews(ctx context.Context, movieID uint) ([]*Review, error) {
	args := m.Called(ctx, movieID)
	reviews, _ := args.Get(0).([]*Review)
	return reviews, args.Error(1)
}

func (m *mockReviewRepo) UpdateReview(ctx context.Context, review *Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) DeleteReview(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepo) Summary(ctx context.Context, movieID uint) (*ReviewSummary, error) {
	args := m.Called(ctx, movieID)
	summary, _ := args.Get(0).(*ReviewSummary)
	return summary, args.Error(1)
}

func (m *mockReviewRepo) TopRated(ctx context.Context, n int) ([]*ReviewSummary, error) {
	args := m.Called(ctx, n)
	top, _ := args.Get(0).([]*ReviewSummary)
	return top, args.Error(1)
}

type mockArtistRepo struct{ mock.Mock }

func (m *mockArtistRepo) CreateArtist(ctx context.Context, artist *Artist) error {
	return m.Called(ctx, artist).Error(0)
}

func (m *mockArtistRepo) GetArtist(ctx context.Context, id uint) (*Artist, error) {
	args := m.Called(ctx, id)
	artist, _ := args.Get(0).(*Artist)
	return artist, args.Error(1)
}

func (m *mockArtistRepo) DeleteArtist(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockArtistRepo) AddSkill(ctx context.Context, artistID, skillID uint) error {
	return m.Called(ctx, artistID, skillID).Error(0)
}

func (m *mockArtistRepo) RemoveSkill(ctx context.Context, artistID, skillID uint) error {
	return m.Called(ctx, artistID, skillID).Error(0)
}

func (m *mockArtistRepo) ListArtistSkills(ctx context.Context, artistID uint) ([]*Term, error) {
	args := m.Called(ctx, artistID)
	terms, _ := args.Get(0).([]*Term)
	return terms, args.Error(1)
}

func (m *mockArtistRepo) AddCredit(ctx context.Context, credit *Credit) error {
	return m.Called(ctx, credit).Error(0)
}

func (m *mockArtistRepo) RemoveCredit(ctx context.Context, credit *Credit) error {
	return m.Called(ctx, credit).Error(0)
}

func (m *mockArtistRepo) ListCredits(ctx context.Context, movieID uint) ([]*Credit, error) {
	args := m.Called(ctx, movieID)
	credits, _ := args.Get(0).([]*Credit)
	return credits, args.Error(1)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetUser(ctx context.Context, id uint) (*User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*User)
	return user, args.Error(1)
}

func (m *mockUserRepo) DeleteUser(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockVocabularyRepo struct{ mock.Mock }

func (m *mockVocabularyRepo) CreateTerm(ctx context.Context, vocab Vocabulary, term *Term) error {
	return m.Called(ctx, vocab, term).Error(0)
}

func (m *mockVocabularyRepo) ListTerms(ctx context.Context, vocab Vocabulary) ([]*Term, error) {
	args := m.Called(ctx, vocab)
	terms, _ := args.Get(0).([]*Term)
	return terms, args.Error(1)
}

func (m *mockVocabularyRepo) GetTermByName(ctx context.Context, vocab Vocabulary, name string) (*Term, error) {
	args := m.Called(ctx, vocab, name)
	term, _ := args.Get(0).(*Term)
	return term, args.Error(1)
}

func (m *mockVocabularyRepo) DeleteTerm(ctx context.Context, vocab Vocabulary, id uint) error {
	return m.Called(ctx, vocab, id).Error(0)
}

type mockSchemaRepo struct{ mock.Mock }

func (m *mockSchemaRepo) Migrate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSchemaRepo) Drop(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSchemaRepo) Seed(ctx context.Context) ([]TableCount, error) {
	args := m.Called(ctx)
	counts, _ := args.Get(0).([]TableCount)
	return counts, args.Error(1)
}
