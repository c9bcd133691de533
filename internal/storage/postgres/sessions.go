package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/storage"
)

func (s *Storage) CreateSession(ctx context.Context, id string, userID int, expiresAt time.Time) error {
	const op = "storage.postgres.CreateSession"

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, user_id, expires_at) VALUES ($1, $2, $3)",
		id, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	const op = "storage.postgres.GetSession"

	var session models.Session
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, expires_at FROM sessions WHERE id = $1", id,
	).Scan(&session.ID, &session.UserID, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &session, nil
}

// DeleteSession is idempotent: deleting an absent session is not an error.
func (s *Storage) DeleteSession(ctx context.Context, id string) error {
	const op = "storage.postgres.DeleteSession"

	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
