package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/storage"
)

func (s *Storage) SaveTrip(ctx context.Context, trip *models.Trip) (int, error) {
	const op = "storage.postgres.SaveTrip"

	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO trips (owner_id, destination, start_date, end_date, notes, lat, lon)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		trip.OwnerID, trip.Destination, trip.StartDate, trip.EndDate, trip.Notes, trip.Lat, trip.Lon,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetTrip(ctx context.Context, tripID int) (*models.Trip, error) {
	const op = "storage.postgres.GetTrip"

	var trip models.Trip
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, destination, start_date, end_date, notes, lat, lon, created_at
		 FROM trips WHERE id = $1`, tripID,
	).Scan(&trip.ID, &trip.OwnerID, &trip.Destination, &trip.StartDate, &trip.EndDate,
		&trip.Notes, &trip.Lat, &trip.Lon, &trip.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.loadTripChildren(ctx, &trip); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &trip, nil
}

// ListTrips returns the owner's trips in creation order, expenses and
// checklist included.
func (s *Storage) ListTrips(ctx context.Context, ownerID int) ([]models.Trip, error) {
	const op = "storage.postgres.ListTrips"

	trips, err := s.queryTrips(ctx,
		`SELECT id, owner_id, destination, start_date, end_date, notes, lat, lon, created_at
		 FROM trips WHERE owner_id = $1 ORDER BY id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return trips, nil
}

// ListAllTrips returns every trip in the system. Admin panel only.
func (s *Storage) ListAllTrips(ctx context.Context) ([]models.Trip, error) {
	const op = "storage.postgres.ListAllTrips"

	trips, err := s.queryTrips(ctx,
		`SELECT id, owner_id, destination, start_date, end_date, notes, lat, lon, created_at
		 FROM trips ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return trips, nil
}

func (s *Storage) queryTrips(ctx context.Context, query string, args ...any) ([]models.Trip, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		var trip models.Trip
		if err := rows.Scan(&trip.ID, &trip.OwnerID, &trip.Destination, &trip.StartDate,
			&trip.EndDate, &trip.Notes, &trip.Lat, &trip.Lon, &trip.CreatedAt); err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range trips {
		if err := s.loadTripChildren(ctx, &trips[i]); err != nil {
			return nil, err
		}
	}

	return trips, nil
}

func (s *Storage) loadTripChildren(ctx context.Context, trip *models.Trip) error {
	expenses, err := s.listExpenses(ctx, trip.ID)
	if err != nil {
		return err
	}
	trip.Expenses = expenses

	checklist, err := s.listChecklist(ctx, trip.ID)
	if err != nil {
		return err
	}
	trip.Checklist = checklist

	return nil
}

// DeleteTrip removes the trip; expenses and checklist items cascade.
func (s *Storage) DeleteTrip(ctx context.Context, tripID int) error {
	const op = "storage.postgres.DeleteTrip"

	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = $1", tripID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) listExpenses(ctx context.Context, tripID int) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, category, description, amount, currency
		 FROM expenses WHERE trip_id = $1 ORDER BY position`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.TripID, &e.Category, &e.Description, &e.Amount, &e.Currency); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

func (s *Storage) AddExpense(ctx context.Context, e models.Expense) (int, error) {
	const op = "storage.postgres.AddExpense"

	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO expenses (trip_id, position, category, description, amount, currency)
		 VALUES ($1, (SELECT COALESCE(MAX(position), 0) + 1 FROM expenses WHERE trip_id = $1), $2, $3, $4, $5)
		 RETURNING id`,
		e.TripID, e.Category, e.Description, e.Amount, e.Currency,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) UpdateExpense(ctx context.Context, e models.Expense) error {
	const op = "storage.postgres.UpdateExpense"

	res, err := s.db.ExecContext(ctx,
		"UPDATE expenses SET category = $1, description = $2, amount = $3, currency = $4 WHERE id = $5",
		e.Category, e.Description, e.Amount, e.Currency, e.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeleteExpense(ctx context.Context, expenseID int) error {
	const op = "storage.postgres.DeleteExpense"

	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", expenseID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) listChecklist(ctx context.Context, tripID int) ([]models.ChecklistItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, trip_id, item, done
		 FROM checklist_items WHERE trip_id = $1 ORDER BY position`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.ChecklistItem{}
	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.TripID, &item.Text, &item.Done); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *Storage) AddChecklistItem(ctx context.Context, tripID int, text string) (int, error) {
	const op = "storage.postgres.AddChecklistItem"

	var id int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO checklist_items (trip_id, position, item, done)
		 VALUES ($1, (SELECT COALESCE(MAX(position), 0) + 1 FROM checklist_items WHERE trip_id = $1), $2, FALSE)
		 RETURNING id`,
		tripID, text,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) SetChecklistItemDone(ctx context.Context, itemID int, done bool) error {
	const op = "storage.postgres.SetChecklistItemDone"

	res, err := s.db.ExecContext(ctx,
		"UPDATE checklist_items SET done = $1 WHERE id = $2", done, itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) UpdateChecklistItemText(ctx context.Context, itemID int, text string) error {
	const op = "storage.postgres.UpdateChecklistItemText"

	res, err := s.db.ExecContext(ctx,
		"UPDATE checklist_items SET item = $1 WHERE id = $2", text, itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *Storage) DeleteChecklistItem(ctx context.Context, itemID int) error {
	const op = "storage.postgres.DeleteChecklistItem"

	res, err := s.db.ExecContext(ctx, "DELETE FROM checklist_items WHERE id = $1", itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
