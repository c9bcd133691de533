package service

import (
	"context"
	"time"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/storage"
)

// memStore is an in-memory implementation of the repository interfaces used
// across the service tests.
type memStore struct {
	nextUserID int
	nextTripID int
	nextRowID  int

	users    map[int]*models.User
	sessions map[string]*models.Session
	trips    map[int]*models.Trip
}

func newMemStore() *memStore {
	return &memStore{
		nextUserID: 1,
		nextTripID: 1,
		nextRowID:  1,
		users:      make(map[int]*models.User),
		sessions:   make(map[string]*models.Session),
		trips:      make(map[int]*models.Trip),
	}
}

// --- UserRepository ---

func (m *memStore) SaveUser(ctx context.Context, username string, passHash []byte, displayName string) (int, error) {
	for _, u := range m.users {
		if u.Username == username {
			return 0, storage.ErrUserExists
		}
	}
	id := m.nextUserID
	m.nextUserID++
	m.users[id] = &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(passHash),
		DisplayName:  displayName,
		Role:         models.RoleUser,
	}
	return id, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (m *memStore) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *memStore) UpdateProfile(ctx context.Context, userID int, profile models.Profile) error {
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.DisplayName = profile.DisplayName
	u.Bio = profile.Bio
	u.FavoriteDestination = profile.FavoriteDestination
	u.Goals = profile.Goals
	return nil
}

func (m *memStore) UpdatePassword(ctx context.Context, userID int, passHash []byte) error {
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = string(passHash)
	return nil
}

func (m *memStore) SetAvatarKey(ctx context.Context, userID int, key *string) error {
	u, ok := m.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	u.AvatarKey = key
	return nil
}

func (m *memStore) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.users))
	for id := 1; id < m.nextUserID; id++ {
		if u, ok := m.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (m *memStore) DeleteUser(ctx context.Context, userID int) error {
	if _, ok := m.users[userID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.users, userID)
	for id, t := range m.trips {
		if t.OwnerID == userID {
			delete(m.trips, id)
		}
	}
	for id, s := range m.sessions {
		if s.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

// --- SessionRepository ---

func (m *memStore) CreateSession(ctx context.Context, id string, userID int, expiresAt time.Time) error {
	m.sessions[id] = &models.Session{ID: id, UserID: userID, ExpiresAt: expiresAt}
	return nil
}

func (m *memStore) GetSession(ctx context.Context, id string) (*models.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *memStore) DeleteSession(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

// --- TripRepository ---

func (m *memStore) SaveTrip(ctx context.Context, trip *models.Trip) (int, error) {
	id := m.nextTripID
	m.nextTripID++
	copied := *trip
	copied.ID = id
	copied.Expenses = []models.Expense{}
	copied.Checklist = []models.ChecklistItem{}
	m.trips[id] = &copied
	return id, nil
}

func copyTrip(t *models.Trip) *models.Trip {
	copied := *t
	copied.Expenses = append([]models.Expense{}, t.Expenses...)
	copied.Checklist = append([]models.ChecklistItem{}, t.Checklist...)
	return &copied
}

func (m *memStore) GetTrip(ctx context.Context, tripID int) (*models.Trip, error) {
	t, ok := m.trips[tripID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyTrip(t), nil
}

func (m *memStore) ListTrips(ctx context.Context, ownerID int) ([]models.Trip, error) {
	trips := []models.Trip{}
	for id := 1; id < m.nextTripID; id++ {
		if t, ok := m.trips[id]; ok && t.OwnerID == ownerID {
			trips = append(trips, *copyTrip(t))
		}
	}
	return trips, nil
}

func (m *memStore) ListAllTrips(ctx context.Context) ([]models.Trip, error) {
	trips := []models.Trip{}
	for id := 1; id < m.nextTripID; id++ {
		if t, ok := m.trips[id]; ok {
			trips = append(trips, *copyTrip(t))
		}
	}
	return trips, nil
}

func (m *memStore) DeleteTrip(ctx context.Context, tripID int) error {
	if _, ok := m.trips[tripID]; !ok {
		return storage.ErrNotFound
	}
	delete(m.trips, tripID)
	return nil
}

func (m *memStore) AddExpense(ctx context.Context, e models.Expense) (int, error) {
	t, ok := m.trips[e.TripID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	e.ID = m.nextRowID
	m.nextRowID++
	t.Expenses = append(t.Expenses, e)
	return e.ID, nil
}

func (m *memStore) UpdateExpense(ctx context.Context, e models.Expense) error {
	for _, t := range m.trips {
		for i := range t.Expenses {
			if t.Expenses[i].ID == e.ID {
				e.TripID = t.Expenses[i].TripID
				t.Expenses[i] = e
				return nil
			}
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) DeleteExpense(ctx context.Context, expenseID int) error {
	for _, t := range m.trips {
		for i := range t.Expenses {
			if t.Expenses[i].ID == expenseID {
				t.Expenses = append(t.Expenses[:i], t.Expenses[i+1:]...)
				return nil
			}
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) AddChecklistItem(ctx context.Context, tripID int, text string) (int, error) {
	t, ok := m.trips[tripID]
	if !ok {
		return 0, storage.ErrNotFound
	}
	id := m.nextRowID
	m.nextRowID++
	t.Checklist = append(t.Checklist, models.ChecklistItem{ID: id, TripID: tripID, Text: text})
	return id, nil
}

func (m *memStore) SetChecklistItemDone(ctx context.Context, itemID int, done bool) error {
	for _, t := range m.trips {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist[i].Done = done
				return nil
			}
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) UpdateChecklistItemText(ctx context.Context, itemID int, text string) error {
	for _, t := range m.trips {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist[i].Text = text
				return nil
			}
		}
	}
	return storage.ErrNotFound
}

func (m *memStore) DeleteChecklistItem(ctx context.Context, itemID int) error {
	for _, t := range m.trips {
		for i := range t.Checklist {
			if t.Checklist[i].ID == itemID {
				t.Checklist = append(t.Checklist[:i], t.Checklist[i+1:]...)
				return nil
			}
		}
	}
	return storage.ErrNotFound
}
