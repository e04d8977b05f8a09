package data

import (
	"context"
	"fmt"

	"github.com/robincamp/moviecatalog/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"gorm.io/gorm/clause"
)

type artistRepo struct {
	data *Data
	log  *log.Helper
}

// NewArtistRepo creates a new artist repository
func NewArtistRepo(data *Data, logger log.Logger) biz.ArtistRepo {
	return &artistRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *artistRepo) CreateArtist(ctx context.Context, artist *biz.Artist) error {
	row := &Artist{
		ID:        artist.ID,
		Name:      artist.Name,
		BirthDate: artist.BirthDate,
		Bio:       artist.Bio,
	}
	if err := r.data.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create artist: %w", translateError(err))
	}
	artist.ID = row.ID
	artist.CreatedAt = row.CreatedAt
	return nil
}

func (r *artistRepo) GetArtist(ctx context.Context, id uint) (*biz.Artist, error) {
	var row Artist
	if err := r.data.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("artist %d: %w", id, translateError(err))
	}
	return &biz.Artist{
		ID:        row.ID,
		Name:      row.Name,
		BirthDate: row.BirthDate,
		Bio:       row.Bio,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *artistRepo) DeleteArtist(ctx context.Context, id uint) error {
	result := r.data.db.WithContext(ctx).Delete(&Artist{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete artist: %w", translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("artist %d: %w", id, biz.ErrNotFound)
	}
	return nil
}

func (r *artistRepo) AddSkill(ctx context.Context, artistID, skillID uint) error {
	link := &ArtistSkill{ArtistID: artistID, SkillID: skillID}
	if err := r.data.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *artistRepo) RemoveSkill(ctx context.Context, artistID, skillID uint) error {
	result := r.data.db.WithContext(ctx).
		Where("artist_id = ? AND skill_id = ?", artistID, skillID).
		Delete(&ArtistSkill{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return biz.ErrNotFound
	}
	return nil
}

func (r *artistRepo) ListArtistSkills(ctx context.Context, artistID uint) ([]*biz.Term, error) {
	var rows []termRow
	err := r.data.db.WithContext(ctx).
		Table("skills").
		Select("skills.id, skills.name").
		Joins("JOIN artist_skills ON artist_skills.skill_id = skills.id").
		Where("artist_skills.artist_id = ?", artistID).
		Order("skills.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list artist skills: %w", translateError(err))
	}
	return termsToBiz(rows), nil
}

func (r *artistRepo) AddCredit(ctx context.Context, credit *biz.Credit) error {
	row := creditToModel(credit)
	if err := r.data.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translateError(err)
	}
	return nil
}

func (r *artistRepo) RemoveCredit(ctx context.Context, credit *biz.Credit) error {
	row := creditToModel(credit)
	result := r.data.db.WithContext(ctx).
		Where("movie_id = ? AND artist_id = ? AND role_type_id = ? AND character_name = ?",
			row.MovieID, row.ArtistID, row.RoleTypeID, row.CharacterName).
		Delete(&MovieArtistRole{})
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return biz.ErrNotFound
	}
	return nil
}

// ListCredits orders by credit_order with unbilled credits last.
func (r *artistRepo) ListCredits(ctx context.Context, movieID uint) ([]*biz.Credit, error) {
	var rows []struct {
		MovieID       uint
		ArtistID      uint
		RoleTypeID    uint
		CharacterName string
		CreditOrder   *int
		ArtistName    string
		RoleTypeName  string
	}
	err := r.data.db.WithContext(ctx).
		Table("movie_artist_roles").
		Select("movie_artist_roles.movie_id, movie_artist_roles.artist_id, movie_artist_roles.role_type_id, "+
			"movie_artist_roles.character_name, movie_artist_roles.credit_order, "+
			"artists.name AS artist_name, role_types.name AS role_type_name").
		Joins("JOIN artists ON artists.id = movie_artist_roles.artist_id").
		Joins("JOIN role_types ON role_types.id = movie_artist_roles.role_type_id").
		Where("movie_artist_roles.movie_id = ?", movieID).
		Order("CASE WHEN movie_artist_roles.credit_order IS NULL THEN 1 ELSE 0 END").
		Order("movie_artist_roles.credit_order").
		Order("movie_artist_roles.artist_id").
		Order("movie_artist_roles.role_type_id").
		Order("movie_artist_roles.character_name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list credits: %w", translateError(err))
	}

	credits := make([]*biz.Credit, 0, len(rows))
	for _, row := range rows {
		credit := &biz.Credit{
			MovieID:      row.MovieID,
			ArtistID:     row.ArtistID,
			RoleTypeID:   row.RoleTypeID,
			CreditOrder:  row.CreditOrder,
			ArtistName:   row.ArtistName,
			RoleTypeName: row.RoleTypeName,
		}
		if row.CharacterName != "" {
			name := row.CharacterName
			credit.CharacterName = &name
		}
		credits = append(credits, credit)
	}
	return credits, nil
}

func creditToModel(c *biz.Credit) *MovieArtistRole {
	row := &MovieArtistRole{
		MovieID:     c.MovieID,
		ArtistID:    c.ArtistID,
		RoleTypeID:  c.RoleTypeID,
		CreditOrder: c.CreditOrder,
	}
	if c.CharacterName != nil {
		row.CharacterName = *c.CharacterName
	}
	return row
}
