package biz

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-kratos/kratos/v2/log"
)

// UserUseCase manages reviewer accounts
type UserUseCase struct {
	repo UserRepo
	log  *log.Helper
}

// NewUserUseCase creates a new UserUseCase instance
func NewUserUseCase(repo UserRepo, logger log.Logger) *UserUseCase {
	return &UserUseCase{
		repo: repo,
		log:  log.NewHelper(logger),
	}
}

// Register creates a user. Username and, when given, email must be unique.
func (uc *UserUseCase) Register(ctx context.Context, username string, email *string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalidArgument("username is required")
	}
	if email != nil {
		trimmed := strings.TrimSpace(*email)
		if trimmed == "" {
			email = nil
		} else {
			email = &trimmed
		}
	}

	user := &User{Username: username, Email: email}
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user %q: %w", username, err)
	}
	return user, nil
}

func (uc *UserUseCase) GetUser(ctx context.Context, id uint) (*User, error) {
	user, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (uc *UserUseCase) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	user, err := uc.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

// DeleteUser removes a user together with every review they wrote
func (uc *UserUseCase) DeleteUser(ctx context.Context, id uint) error {
	if err := uc.repo.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	uc.log.WithContext(ctx).Infof("deleted user %d", id)
	return nil
}
