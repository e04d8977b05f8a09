package data

import (
	"context"
	"fmt"

	"github.com/robincamp/moviecatalog/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
)

type userRepo struct {
	data *Data
	log  *log.Helper
}

// NewUserRepo creates a new user repository
func NewUserRepo(data *Data, logger log.Logger) biz.UserRepo {
	return &userRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *userRepo) CreateUser(ctx context.Context, user *biz.User) error {
	row := &User{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	if err := r.data.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", translateError(err))
	}
	user.ID = row.ID
	user.CreatedAt = row.CreatedAt
	return nil
}

func (r *userRepo) GetUser(ctx context.Context, id uint) (*biz.User, error) {
	var row User
	if err := r.data.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return nil, fmt.Errorf("user %d: %w", id, translateError(err))
	}
	return userToBiz(&row), nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*biz.User, error) {
	var row User
	if err := r.data.db.WithContext(ctx).Where("username = ?", username).First(&row).Error; err != nil {
		return nil, fmt.Errorf("user %q: %w", username, translateError(err))
	}
	return userToBiz(&row), nil
}

// DeleteUser cascades to the user's reviews, so the summaries of every movie
// they reviewed are invalidated afterwards.
func (r *userRepo) DeleteUser(ctx context.Context, id uint) error {
	db := r.data.db.WithContext(ctx)

	var movieIDs []uint
	if err := db.Model(&Review{}).Where("user_id = ?", id).Distinct().Pluck("movie_id", &movieIDs).Error; err != nil {
		return fmt.Errorf("failed to collect reviewed movies: %w", translateError(err))
	}

	result := db.Delete(&User{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", translateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %d: %w", id, biz.ErrNotFound)
	}

	for _, movieID := range movieIDs {
		r.data.reviewsChanged(ctx, movieID)
	}
	return nil
}

func userToBiz(row *User) *biz.User {
	return &biz.User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		CreatedAt: row.CreatedAt,
	}
}
