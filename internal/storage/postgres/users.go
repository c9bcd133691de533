package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/storage"
	"github.com/lib/pq"
)

const userColumns = "id, username, password_hash, display_name, role, bio, favorite_destination, goals, avatar_key, created_at"

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.DisplayName,
		&user.Role,
		&user.Bio,
		&user.FavoriteDestination,
		&user.Goals,
		&user.AvatarKey,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) SaveUser(ctx context.Context, username string, passHash []byte, displayName string) (int, error) {
	const op = "storage.postgres.SaveUser"

	var id int
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, display_name) VALUES ($1, $2, $3) RETURNING id",
		username, string(passHash), displayName,
	).Scan(&id)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.postgres.GetUserByUsername"

	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1", username)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	const op = "storage.postgres.GetUserByID"

	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}

func (s *Storage) UpdateProfile(ctx context.Context, userID int, profile models.Profile) error {
	const op = "storage.postgres.UpdateProfile"

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET display_name = $1, bio = $2, favorite_destination = $3, goals = $4 WHERE id = $5",
		profile.DisplayName, profile.Bio, profile.FavoriteDestination, profile.Goals, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdatePassword(ctx context.Context, userID int, passHash []byte) error {
	const op = "storage.postgres.UpdatePassword"

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = $1 WHERE id = $2", string(passHash), userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// SetAvatarKey stores the object-store key of the user's profile picture.
// A nil key clears it.
func (s *Storage) SetAvatarKey(ctx context.Context, userID int, key *string) error {
	const op = "storage.postgres.SetAvatarKey"

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET avatar_key = $1 WHERE id = $2", key, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgres.ListUsers"

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return users, nil
}

// DeleteUser removes the user; trips, expenses, checklist items and sessions
// go with it via ON DELETE CASCADE.
func (s *Storage) DeleteUser(ctx context.Context, userID int) error {
	const op = "storage.postgres.DeleteUser"

	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
