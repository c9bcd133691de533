package service

import (
	"context"
	"time"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
)

// Repository interfaces implemented by internal/storage/postgres. Tests
// substitute in-memory fakes.

type UserRepository interface {
	SaveUser(ctx context.Context, username string, passHash []byte, displayName string) (int, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int, profile models.Profile) error
	UpdatePassword(ctx context.Context, userID int, passHash []byte) error
	SetAvatarKey(ctx context.Context, userID int, key *string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, userID int) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, id string, userID int, expiresAt time.Time) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	DeleteSession(ctx context.Context, id string) error
}

type TripRepository interface {
	SaveTrip(ctx context.Context, trip *models.Trip) (int, error)
	GetTrip(ctx context.Context, tripID int) (*models.Trip, error)
	ListTrips(ctx context.Context, ownerID int) ([]models.Trip, error)
	ListAllTrips(ctx context.Context) ([]models.Trip, error)
	DeleteTrip(ctx context.Context, tripID int) error
	AddExpense(ctx context.Context, e models.Expense) (int, error)
	UpdateExpense(ctx context.Context, e models.Expense) error
	DeleteExpense(ctx context.Context, expenseID int) error
	AddChecklistItem(ctx context.Context, tripID int, text string) (int, error)
	SetChecklistItemDone(ctx context.Context, itemID int, done bool) error
	UpdateChecklistItemText(ctx context.Context, itemID int, text string) error
	DeleteChecklistItem(ctx context.Context, itemID int) error
}
