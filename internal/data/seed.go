package data

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/robincamp/moviecatalog/internal/biz"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFixtures struct {
	Users []struct {
		ID       uint    `yaml:"id"`
		Username string  `yaml:"username"`
		Email    *string `yaml:"email"`
	} `yaml:"users"`
	Movies []struct {
		ID          uint   `yaml:"id"`
		Title       string `yaml:"title"`
		ReleaseYear *int   `yaml:"release_year"`
		Description string `yaml:"description"`
	} `yaml:"movies"`
	Media []struct {
		ID      uint    `yaml:"id"`
		MovieID uint    `yaml:"movie_id"`
		Kind    string  `yaml:"kind"`
		URL     string  `yaml:"url"`
		Caption *string `yaml:"caption"`
	} `yaml:"media"`
	Genres      []seedTerm `yaml:"genres"`
	MovieGenres []struct {
		MovieID uint `yaml:"movie_id"`
		GenreID uint `yaml:"genre_id"`
	} `yaml:"movie_genres"`
	Reviews []struct {
		ID      uint    `yaml:"id"`
		MovieID uint    `yaml:"movie_id"`
		UserID  uint    `yaml:"user_id"`
		Rating  int     `yaml:"rating"`
		Title   *string `yaml:"title"`
		Body    *string `yaml:"body"`
	} `yaml:"reviews"`
	Artists []struct {
		ID        uint   `yaml:"id"`
		Name      string `yaml:"name"`
		BirthDate string `yaml:"birth_date"`
		Bio       string `yaml:"bio"`
	} `yaml:"artists"`
	Skills       []seedTerm `yaml:"skills"`
	ArtistSkills []struct {
		ArtistID uint `yaml:"artist_id"`
		SkillID  uint `yaml:"skill_id"`
	} `yaml:"artist_skills"`
	RoleTypes        []seedTerm `yaml:"role_types"`
	MovieArtistRoles []struct {
		MovieID       uint   `yaml:"movie_id"`
		ArtistID      uint   `yaml:"artist_id"`
		RoleTypeID    uint   `yaml:"role_type_id"`
		CharacterName string `yaml:"character_name"`
		CreditOrder   *int   `yaml:"credit_order"`
	} `yaml:"movie_artist_roles"`
}

type seedTerm struct {
	ID   uint   `yaml:"id"`
	Name string `yaml:"name"`
}

func loadSeedFixtures() (*seedFixtures, error) {
	var f seedFixtures
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to decode seed fixtures: %w", err)
	}
	return &f, nil
}

// insert writes every fixture table in dependency order and reports row counts
// in the same order.
func (f *seedFixtures) insert(tx *gorm.DB) ([]biz.TableCount, error) {
	users := make([]User, 0, len(f.Users))
	for _, u := range f.Users {
		users = append(users, User{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	movies := make([]Movie, 0, len(f.Movies))
	for _, m := range f.Movies {
		movies = append(movies, Movie{ID: m.ID, Title: m.Title, ReleaseYear: m.ReleaseYear, Description: m.Description})
	}
	media := make([]Media, 0, len(f.Media))
	for _, m := range f.Media {
		media = append(media, Media{ID: m.ID, MovieID: m.MovieID, Kind: m.Kind, URL: m.URL, Caption: m.Caption})
	}
	genres := make([]Genre, 0, len(f.Genres))
	for _, g := range f.Genres {
		genres = append(genres, Genre{ID: g.ID, Name: g.Name})
	}
	movieGenres := make([]MovieGenre, 0, len(f.MovieGenres))
	for _, mg := range f.MovieGenres {
		movieGenres = append(movieGenres, MovieGenre{MovieID: mg.MovieID, GenreID: mg.GenreID})
	}
	reviews := make([]Review, 0, len(f.Reviews))
	for _, r := range f.Reviews {
		reviews = append(reviews, Review{ID: r.ID, MovieID: r.MovieID, UserID: r.UserID, Rating: r.Rating, Title: r.Title, Body: r.Body})
	}
	artists := make([]Artist, 0, len(f.Artists))
	for _, a := range f.Artists {
		artist := Artist{ID: a.ID, Name: a.Name, Bio: a.Bio}
		if a.BirthDate != "" {
			born, err := time.Parse(time.DateOnly, a.BirthDate)
			if err != nil {
				return nil, fmt.Errorf("artist %d birth date: %w", a.ID, err)
			}
			artist.BirthDate = &born
		}
		artists = append(artists, artist)
	}
	skills := make([]Skill, 0, len(f.Skills))
	for _, s := range f.Skills {
		skills = append(skills, Skill{ID: s.ID, Name: s.Name})
	}
	artistSkills := make([]ArtistSkill, 0, len(f.ArtistSkills))
	for _, as := range f.ArtistSkills {
		artistSkills = append(artistSkills, ArtistSkill{ArtistID: as.ArtistID, SkillID: as.SkillID})
	}
	roleTypes := make([]RoleType, 0, len(f.RoleTypes))
	for _, rt := range f.RoleTypes {
		roleTypes = append(roleTypes, RoleType{ID: rt.ID, Name: rt.Name})
	}
	credits := make([]MovieArtistRole, 0, len(f.MovieArtistRoles))
	for _, c := range f.MovieArtistRoles {
		credits = append(credits, MovieArtistRole{
			MovieID:       c.MovieID,
			ArtistID:      c.ArtistID,
			RoleTypeID:    c.RoleTypeID,
			CharacterName: c.CharacterName,
			CreditOrder:   c.CreditOrder,
		})
	}

	steps := []struct {
		table string
		rows  interface{}
		n     int
	}{
		{User{}.TableName(), &users, len(users)},
		{Movie{}.TableName(), &movies, len(movies)},
		{Media{}.TableName(), &media, len(media)},
		{Genre{}.TableName(), &genres, len(genres)},
		{MovieGenre{}.TableName(), &movieGenres, len(movieGenres)},
		{Review{}.TableName(), &reviews, len(reviews)},
		{Artist{}.TableName(), &artists, len(artists)},
		{Skill{}.TableName(), &skills, len(skills)},
		{ArtistSkill{}.TableName(), &artistSkills, len(artistSkills)},
		{RoleType{}.TableName(), &roleTypes, len(roleTypes)},
		{MovieArtistRole{}.TableName(), &credits, len(credits)},
	}

	counts := make([]biz.TableCount, 0, len(steps))
	for _, step := range steps {
		if step.n == 0 {
			counts = append(counts, biz.TableCount{Table: step.table})
			continue
		}
		result := tx.Omit(clause.Associations).Create(step.rows)
		if result.Error != nil {
			return nil, fmt.Errorf("seed %s: %w", step.table, result.Error)
		}
		counts = append(counts, biz.TableCount{Table: step.table, Rows: result.RowsAffected})
	}
	return counts, nil
}
