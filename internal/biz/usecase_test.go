package biz

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterUser(t *testing.T) {
	repo := new(mockUserRepo)
	uc := NewUserUseCase(repo, testLogger)

	_, err := uc.Register(context.Background(), " ", nil)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	blank := "  "
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *User) bool {
		return u.Username == "carol" && u.Email == nil
	})).Return(nil).Once()
	user, err := uc.Register(context.Background(), " carol", &blank)
	require.NoError(t, err)
	assert.Nil(t, user.Email)

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(ErrDuplicate).Once()
	_, err = uc.Register(context.Background(), "alice", nil)
	assert.True(t, errors.Is(err, ErrDuplicate))
	repo.AssertExpectations(t)
}

func TestVocabularyUseCase(t *testing.T) {
	repo := new(mockVocabularyRepo)
	uc := NewVocabularyUseCase(repo, testLogger)
	ctx := context.Background()

	_, err := uc.AddTerm(ctx, Vocabulary("mood"), "Gloomy")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	_, err = uc.AddTerm(ctx, VocabularyGenre, "")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.True(t, errors.Is(uc.RemoveTerm(ctx, Vocabulary(""), 1), ErrInvalidArgument))

	repo.On("CreateTerm", mock.Anything, VocabularyGenre, mock.MatchedBy(func(term *Term) bool {
		return term.Name == "Horror"
	})).Return(nil)
	term, err := uc.AddTerm(ctx, VocabularyGenre, " Horror ")
	require.NoError(t, err)
	assert.Equal(t, "Horror", term.Name)

	repo.On("GetTermByName", mock.Anything, VocabularySkill, "Acting").Return(&Term{ID: 1, Name: "Acting"}, nil)
	term, err = uc.Lookup(ctx, VocabularySkill, "Acting ")
	require.NoError(t, err)
	assert.EqualValues(t, 1, term.ID)
	repo.AssertExpectations(t)
}

func TestArtistUseCase(t *testing.T) {
	repo := new(mockArtistRepo)
	uc := NewArtistUseCase(repo, testLogger)
	ctx := context.Background()

	_, err := uc.CreateArtist(ctx, &Artist{Name: ""})
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	negative := -1
	_, err = uc.Credit(ctx, &Credit{MovieID: 1, ArtistID: 1, RoleTypeID: 1, CreditOrder: &negative})
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	repo.AssertNotCalled(t, "AddCredit", mock.Anything, mock.Anything)

	name := "  Captain Blaze "
	repo.On("AddCredit", mock.Anything, mock.MatchedBy(func(c *Credit) bool {
		return c.CharacterName != nil && *c.CharacterName == "Captain Blaze"
	})).Return(ErrDuplicate)
	_, err = uc.Credit(ctx, &Credit{MovieID: 1, ArtistID: 1, RoleTypeID: 1, CharacterName: &name})
	assert.True(t, errors.Is(err, ErrDuplicate))
	repo.AssertExpectations(t)
}
