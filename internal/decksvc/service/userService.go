package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avvvet/deckbuilder-services/internal/decksvc/models"
	"golang.org/x/crypto/bcrypt"
)

// GuestUsername is the shared account behind guest logins.
const GuestUsername = "guest"

const (
	minUsernameLen = 3
	maxUsernameLen = 32
	minPasswordLen = 8
)

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserService struct represents the user service layer
type UserService struct {
	userStore UserRepository
	cost      int
}

// NewUserService creates a new UserService instance
func NewUserService(userStore UserRepository) *UserService {
	return &UserService{
		userStore: userStore,
		cost:      bcrypt.DefaultCost,
	}
}

func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return nil, fmt.Errorf("%w: username must be %d to %d characters", ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	if strings.EqualFold(username, GuestUsername) {
		return nil, fmt.Errorf("%w: username %q is reserved", ErrConflict, username)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userStore.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userStore.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(storeErr(err), ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.IsGuest() {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GuestLogin returns the shared guest account, creating it on first use.
func (s *UserService) GuestLogin(ctx context.Context) (*models.User, error) {
	user, err := s.userStore.GetByUsername(ctx, GuestUsername)
	if err == nil {
		return user, nil
	}
	if !errors.Is(storeErr(err), ErrNotFound) {
		return nil, err
	}

	user, err = s.userStore.CreateUser(ctx, models.User{Username: GuestUsername, Role: models.RoleGuest})
	if errors.Is(storeErr(err), ErrConflict) {
		// lost a race with another guest login
		return s.userStore.GetByUsername(ctx, GuestUsername)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create guest user: %w", err)
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return user, nil
}
