package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/lib/jwt"
	"github.com/MARELLASUSANNA/TravelViz/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles signup, login, logout and profile management. A login
// creates a server-side session and mints a JWT carrying its id, so logout
// can invalidate the token before it expires.
type AuthService struct {
	users      UserRepository
	sessions   SessionRepository
	logger     *slog.Logger
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(users UserRepository, sessions SessionRepository, logger *slog.Logger, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		users:      users,
		sessions:   sessions,
		logger:     logger,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func (s *AuthService) Signup(ctx context.Context, username, password, displayName string) (int, error) {
	if username == "" || password == "" {
		return 0, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if displayName == "" {
		displayName = username
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", "error", err)
		return 0, err
	}

	id, err := s.users.SaveUser(ctx, username, passHash, displayName)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			return 0, ErrDuplicateUser
		}
		s.logger.Error("Failed to save user", "error", err)
		return 0, err
	}

	s.logger.Info("Registered new user", slog.String("username", username))

	return id, nil
}

// Login verifies the credentials and returns a bearer token. A wrong username
// and a wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	sessionID := uuid.NewString()
	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.sessions.CreateSession(ctx, sessionID, user.ID, expiresAt); err != nil {
		return "", err
	}

	token, err := jwt.NewToken(user, sessionID, s.jwtSecret, s.sessionTTL)
	if err != nil {
		return "", err
	}

	s.logger.Info("User logged in", slog.String("username", username))

	return token, nil
}

// Logout drops the session. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.DeleteSession(ctx, sessionID)
}

// Authenticate resolves a session id from a parsed token into the logged-in
// user. Expired or revoked sessions fail with ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*models.User, error) {
	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if session.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID int, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password must not be empty", ErrValidation)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, userID, passHash); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int, profile models.Profile) error {
	if err := s.users.UpdateProfile(ctx, userID, profile); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SetAvatar records the object-store key of an uploaded profile picture.
func (s *AuthService) SetAvatar(ctx context.Context, userID int, key string) error {
	if key == "" {
		return fmt.Errorf("%w: avatar key must not be empty", ErrValidation)
	}
	if err := s.users.SetAvatarKey(ctx, userID, &key); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
