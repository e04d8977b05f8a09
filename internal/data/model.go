package data

import (
	"time"
)

// User represents the users table
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"uniqueIndex:uq_users_username;not null;size:64"`
	Email     *string   `gorm:"uniqueIndex:uq_users_email;size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// Movie represents the movies table
type Movie struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"not null;size:255;index:idx_movies_title"`
	ReleaseYear *int      `gorm:"column:release_year"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime;not null"`
}

// TableName overrides the table name
func (Movie) TableName() string {
	return "movies"
}

// Media represents the media table: images and videos of a movie
type Media struct {
	ID        uint      `gorm:"primaryKey"`
	MovieID   uint      `gorm:"not null;index:idx_media_movie"`
	Kind      string    `gorm:"not null;size:10;check:chk_media_kind,kind IN ('image', 'video')"`
	URL       string    `gorm:"column:url;not null;size:1024"`
	Caption   *string   `gorm:"size:255"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Media) TableName() string {
	return "media"
}

// Genre represents the genres vocabulary table
type Genre struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex:uq_genres_name;not null;size:100"`
}

// TableName overrides the table name
func (Genre) TableName() string {
	return "genres"
}

// Skill represents the skills vocabulary table
type Skill struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex:uq_skills_name;not null;size:100"`
}

// TableName overrides the table name
func (Skill) TableName() string {
	return "skills"
}

// RoleType represents the role_types vocabulary table
type RoleType struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex:uq_role_types_name;not null;size:100"`
}

// TableName overrides the table name
func (RoleType) TableName() string {
	return "role_types"
}

// MovieGenre links movies and genres
type MovieGenre struct {
	MovieID uint `gorm:"primaryKey;autoIncrement:false"`
	GenreID uint `gorm:"primaryKey;autoIncrement:false"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Genre Genre `gorm:"foreignKey:GenreID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (MovieGenre) TableName() string {
	return "movie_genres"
}

// Artist represents the artists table
type Artist struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"not null;size:255"`
	BirthDate *time.Time `gorm:"type:date"`
	Bio       string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"autoCreateTime;not null"`
}

// TableName overrides the table name
func (Artist) TableName() string {
	return "artists"
}

// ArtistSkill links artists and skills
type ArtistSkill struct {
	ArtistID uint `gorm:"primaryKey;autoIncrement:false"`
	SkillID  uint `gorm:"primaryKey;autoIncrement:false"`

	Artist Artist `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
	Skill  Skill  `gorm:"foreignKey:SkillID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (ArtistSkill) TableName() string {
	return "artist_skills"
}

// Review represents the reviews table
type Review struct {
	ID        uint      `gorm:"primaryKey"`
	MovieID   uint      `gorm:"not null;index:idx_reviews_movie"`
	UserID    uint      `gorm:"not null"`
	Rating    int       `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 10"`
	Title     *string   `gorm:"size:255"`
	Body      *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime;not null"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (Review) TableName() string {
	return "reviews"
}

// MovieArtistRole represents one credit. CharacterName is part of the key and
// is never NULL; crew credits use the empty string.
type MovieArtistRole struct {
	MovieID       uint   `gorm:"primaryKey;autoIncrement:false"`
	ArtistID      uint   `gorm:"primaryKey;autoIncrement:false"`
	RoleTypeID    uint   `gorm:"primaryKey;autoIncrement:false"`
	CharacterName string `gorm:"primaryKey;size:255;not null;default:''"`
	CreditOrder   *int

	Movie    Movie    `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE"`
	Artist   Artist   `gorm:"foreignKey:ArtistID;constraint:OnDelete:CASCADE"`
	RoleType RoleType `gorm:"foreignKey:RoleTypeID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name
func (MovieArtistRole) TableName() string {
	return "movie_artist_roles"
}

// schemaModels lists every model with referenced tables ahead of the tables referencing them.
func schemaModels() []interface{} {
	return []interface{}{
		&User{},
		&Movie{},
		&Media{},
		&Genre{},
		&Skill{},
		&RoleType{},
		&MovieGenre{},
		&Artist{},
		&ArtistSkill{},
		&Review{},
		&MovieArtistRole{},
	}
}
