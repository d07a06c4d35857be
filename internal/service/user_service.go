package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// UserService handles account registration and credential checks.
type UserService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *UserService {
	if users == nil {
		panic("users store cannot be nil")
	}
	if hasher == nil {
		panic("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// Register creates a new account with a bcrypt-hashed password.
// Returns store.ErrUsernameExists when the username is taken and
// domain.ErrPasswordTooShort when the password fails validation.
func (s *UserService) Register(
	ctx context.Context,
	username, password, firstName, lastName string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidatePlaintextPassword(password); err != nil {
		return nil, err
	}

	user, err := domain.NewUser(username, firstName, lastName)
	if err != nil {
		log.Warn("registration rejected",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Warn("username already taken", slog.String("username", username))
			return nil, err
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", username))
	return user, nil
}

// Authenticate checks a username/password pair and returns the user on
// success. An unknown user and a wrong password both yield
// auth.ErrInvalidCredentials.
func (s *UserService) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown user", slog.String("username", username))
			return nil, auth.ErrInvalidCredentials
		}
		log.Error("failed to load user for login",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("password mismatch", slog.String("username", username))
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}
