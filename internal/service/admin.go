package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/storage"
)

// AdminService exposes the privileged panel operations. It reuses the same
// repositories as the regular services; the only difference is the role gate
// applied to every call.
type AdminService struct {
	users  UserRepository
	trips  TripRepository
	logger *slog.Logger
}

func NewAdminService(users UserRepository, trips TripRepository, logger *slog.Logger) *AdminService {
	return &AdminService{users: users, trips: trips, logger: logger}
}

func requireAdmin(caller *models.User) error {
	if caller == nil || caller.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}

func (s *AdminService) ListUsers(ctx context.Context, caller *models.User) ([]models.User, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.users.ListUsers(ctx)
}

// DeleteUser removes an account and, through cascading deletes, all of its
// trips, expenses and checklist items.
func (s *AdminService) DeleteUser(ctx context.Context, caller *models.User, username string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if user.ID == caller.ID {
		return ErrForbidden
	}

	if err := s.users.DeleteUser(ctx, user.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("User deleted by admin",
		slog.String("username", username), slog.String("admin", caller.Username))

	return nil
}

func (s *AdminService) ListAllTrips(ctx context.Context, caller *models.User) ([]models.Trip, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	return s.trips.ListAllTrips(ctx)
}

// DeleteAnyTrip removes a trip regardless of who owns it.
func (s *AdminService) DeleteAnyTrip(ctx context.Context, caller *models.User, tripID int) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	if err := s.trips.DeleteTrip(ctx, tripID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("Trip deleted by admin",
		slog.Int("trip_id", tripID), slog.String("admin", caller.Username))

	return nil
}

// ResetAvatar clears a user's profile picture reference.
func (s *AdminService) ResetAvatar(ctx context.Context, caller *models.User, username string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.users.SetAvatarKey(ctx, user.ID, nil); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	return nil
}
