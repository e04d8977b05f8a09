package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// ArtistUseCase handles artists, their skills and their movie credits
type ArtistUseCase struct {
	repo ArtistRepo
	log  *log.Helper
}

// NewArtistUseCase creates a new ArtistUseCase instance
func NewArtistUseCase(repo ArtistRepo, logger log.Logger) *ArtistUseCase {
	return &ArtistUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

func (uc *ArtistUseCase) CreateArtist(ctx context.Context, artist *Artist) (*Artist, error) {
	artist.Name = strings.TrimSpace(artist.Name)
	if artist.Name == "" {
		return nil, invalidArgument("artist name is required")
	}
	if err := uc.repo.CreateArtist(ctx, artist); err != nil {
		return nil, fmt.Errorf("failed to create artist: %w", err)
	}
	return artist, nil
}

func (uc *ArtistUseCase) GetArtist(ctx context.Context, id uint) (*Artist, error) {
	artist, err := uc.repo.GetArtist(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get artist: %w", err)
	}
	return artist, nil
}

// DeleteArtist removes an artist with their skills and credits
func (uc *ArtistUseCase) DeleteArtist(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteArtist(ctx, id); err != nil {
		return fmt.Errorf("failed to delete artist: %w", err)
	}
	return nil
}

func (uc *ArtistUseCase) AddSkill(ctx context.Context, artistID, skillID uint) error {
	if err := uc.repo.AddSkill(ctx, artistID, skillID); err != nil {
		return fmt.Errorf("failed to add skill %d to artist %d: %w", skillID, artistID, err)
	}
	return nil
}

func (uc *ArtistUseCase) RemoveSkill(ctx context.Context, artistID, skillID uint) error {
	if err := uc.repo.RemoveSkill(ctx, artistID, skillID); err != nil {
		return fmt.Errorf("failed to remove skill %d from artist %d: %w", skillID, artistID, err)
	}
	return nil
}

func (uc *ArtistUseCase) ListSkills(ctx context.Context, artistID uint) ([]*Term, error) {
	skills, err := uc.repo.ListArtistSkills(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

// Credit bills an artist in a movie under a role type. The same artist may hold
// several credits in one movie as long as the character names differ.
func (uc *ArtistUseCase) Credit(ctx context.Context, credit *Credit) (*Credit, error) {
	if credit.CharacterName != nil {
		name := strings.TrimSpace(*credit.CharacterName)
		credit.CharacterName = &name
	}
	if credit.CreditOrder != nil && *credit.CreditOrder < 0 {
		return nil, invalidArgument("credit order must not be negative")
	}
	if err := uc.repo.AddCredit(ctx, credit); err != nil {
		return nil, fmt.Errorf("failed to credit artist %d in movie %d: %w", credit.ArtistID, credit.MovieID, err)
	}
	return credit, nil
}

func (uc *ArtistUseCase) Uncredit(ctx context.Context, credit *Credit) error {
	if err := uc.repo.RemoveCredit(ctx, credit); err != nil {
		return fmt.Errorf("failed to remove credit: %w", err)
	}
	return nil
}

// ListCredits returns the billing of a movie, ordered by credit order
func (uc *ArtistUseCase) ListCredits(ctx context.Context, movieID uint) ([]*Credit, error) {
	credits, err := uc.repo.ListCredits(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	return credits, nil
}
