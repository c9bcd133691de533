package service

import (
	"context"
	"testing"
	"time"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTripService(store *memStore) *TripService {
	return NewTripService(store, discardLogger())
}

func mustCreateTrip(t *testing.T, svc *TripService, ownerID int, destination, start, end string) int {
	t.Helper()
	id, err := svc.CreateTrip(context.Background(), ownerID, destination, date(start), date(end), "", nil, nil)
	require.NoError(t, err)
	return id
}

func TestCreateTrip(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	trip, err := svc.GetTrip(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, "Paris", trip.Destination)
	assert.Empty(t, trip.Expenses)
	assert.Empty(t, trip.Checklist)
}

func TestCreateTripInvalidRange(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	_, err := svc.CreateTrip(context.Background(), 1, "Paris", date("2026-09-07"), date("2026-09-01"), "", nil, nil)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCreateTripSingleDay(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	// start == end is a valid one-day trip
	_, err := svc.CreateTrip(context.Background(), 1, "Paris", date("2026-09-01"), date("2026-09-01"), "", nil, nil)
	assert.NoError(t, err)
}

func TestCreateTripEmptyDestination(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	_, err := svc.CreateTrip(context.Background(), 1, "", date("2026-09-01"), date("2026-09-07"), "", nil, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetTripOwnership(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.GetTrip(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.GetTrip(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteTripRemovesChildren(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddExpense(context.Background(), 1, id, models.CategoryFood, "dinner", 40, "")
	require.NoError(t, err)
	_, err = svc.AddChecklistItem(context.Background(), 1, id, "passport")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTrip(context.Background(), 1, id))

	_, err = svc.GetTrip(context.Background(), 1, id)
	assert.ErrorIs(t, err, ErrNotFound)

	badge, err := svc.Badge(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, badge.TripCount)
}

func TestDeleteTripNotOwner(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	err := svc.DeleteTrip(context.Background(), 2, id)
	assert.ErrorIs(t, err, ErrNotOwner)

	_, getErr := svc.GetTrip(context.Background(), 1, id)
	assert.NoError(t, getErr)
}

func TestAddExpense(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddExpense(context.Background(), 1, id, models.CategoryFlights, "round trip", 420, "")
	require.NoError(t, err)
	_, err = svc.AddExpense(context.Background(), 1, id, models.CategoryHotels, "three nights", 300, "EUR")
	require.NoError(t, err)

	trip, err := svc.GetTrip(context.Background(), 1, id)
	require.NoError(t, err)
	require.Len(t, trip.Expenses, 2)
	assert.Equal(t, models.DefaultCurrency, trip.Expenses[0].Currency)
	assert.Equal(t, "EUR", trip.Expenses[1].Currency)
	assert.Equal(t, 720.0, trip.TotalExpense())
}

func TestAddExpenseValidation(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddExpense(context.Background(), 1, id, models.CategoryFood, "dinner", -5, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.AddExpense(context.Background(), 1, id, models.CategoryFood, "", 10, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddExpense(context.Background(), 1, id, "Bribes", "customs", 10, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddExpense(context.Background(), 1, id, models.CategoryFood, "dinner", 0, "")
	assert.NoError(t, err, "zero amount is allowed")
}

func TestUpdateExpenseByIndex(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddExpense(context.Background(), 1, id, models.CategoryFood, "dinner", 40, "")
	require.NoError(t, err)
	_, err = svc.AddExpense(context.Background(), 1, id, models.CategoryMisc, "souvenirs", 15, "")
	require.NoError(t, err)

	err = svc.UpdateExpense(context.Background(), 1, id, 1, models.CategoryActivities, "museum", 25, "")
	require.NoError(t, err)

	trip, err := svc.GetTrip(context.Background(), 1, id)
	require.NoError(t, err)
	assert.Equal(t, "dinner", trip.Expenses[0].Description)
	assert.Equal(t, "museum", trip.Expenses[1].Description)
	assert.Equal(t, models.CategoryActivities, trip.Expenses[1].Category)
	assert.Equal(t, 25.0, trip.Expenses[1].Amount)
}

func TestExpenseIndexOutOfRange(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddExpense(context.Background(), 1, id, models.CategoryFood, "dinner", 40, "")
	require.NoError(t, err)

	err = svc.UpdateExpense(context.Background(), 1, id, 1, models.CategoryFood, "dinner", 40, "")
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = svc.DeleteExpense(context.Background(), 1, id, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = svc.DeleteExpense(context.Background(), 1, id, 5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDeleteExpense(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddExpense(context.Background(), 1, id, models.CategoryFood, "dinner", 40, "")
	require.NoError(t, err)
	_, err = svc.AddExpense(context.Background(), 1, id, models.CategoryMisc, "souvenirs", 15, "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(context.Background(), 1, id, 0))

	trip, err := svc.GetTrip(context.Background(), 1, id)
	require.NoError(t, err)
	require.Len(t, trip.Expenses, 1)
	assert.Equal(t, "souvenirs", trip.Expenses[0].Description)
}

func TestChecklistLifecycle(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddChecklistItem(context.Background(), 1, id, "passport")
	require.NoError(t, err)
	_, err = svc.AddChecklistItem(context.Background(), 1, id, "charger")
	require.NoError(t, err)

	done, err := svc.ToggleChecklistItem(context.Background(), 1, id, 0)
	require.NoError(t, err)
	assert.True(t, done)

	done, err = svc.ToggleChecklistItem(context.Background(), 1, id, 0)
	require.NoError(t, err)
	assert.False(t, done)

	require.NoError(t, svc.UpdateChecklistItem(context.Background(), 1, id, 1, "power bank"))
	require.NoError(t, svc.DeleteChecklistItem(context.Background(), 1, id, 0))

	trip, err := svc.GetTrip(context.Background(), 1, id)
	require.NoError(t, err)
	require.Len(t, trip.Checklist, 1)
	assert.Equal(t, "power bank", trip.Checklist[0].Text)
	assert.False(t, trip.Checklist[0].Done)
}

func TestChecklistValidation(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	id := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")

	_, err := svc.AddChecklistItem(context.Background(), 1, id, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.ToggleChecklistItem(context.Background(), 1, id, 0)
	assert.ErrorIs(t, err, ErrOutOfRange)

	err = svc.UpdateChecklistItem(context.Background(), 1, id, 3, "socks")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestBadgeFollowsTripCount(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	badge, err := svc.Badge(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "New Traveler", badge.Name)

	mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")
	badge, err = svc.Badge(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Explorer", badge.Name)

	mustCreateTrip(t, svc, 1, "Tokyo", "2026-10-01", "2026-10-07")
	mustCreateTrip(t, svc, 1, "Rome", "2026-11-01", "2026-11-07")
	badge, err = svc.Badge(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Adventurer", badge.Name)

	// Trips of other users do not count.
	mustCreateTrip(t, svc, 2, "Bali", "2026-12-01", "2026-12-07")
	badge, err = svc.Badge(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, badge.TripCount)
}

func TestInsights(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)
	svc.now = func() time.Time { return date("2026-09-15") }

	parisID := mustCreateTrip(t, svc, 1, "Paris", "2026-09-01", "2026-09-07")
	tokyoID := mustCreateTrip(t, svc, 1, "Tokyo", "2026-10-01", "2026-10-07")
	mustCreateTrip(t, svc, 1, "Paris", "2026-11-01", "2026-11-07")

	_, err := svc.AddExpense(context.Background(), 1, parisID, models.CategoryFlights, "flights", 400, "")
	require.NoError(t, err)
	_, err = svc.AddExpense(context.Background(), 1, tokyoID, models.CategoryHotels, "hotel", 600, "")
	require.NoError(t, err)

	insights, err := svc.Insights(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 3, insights.TotalTrips)
	assert.Equal(t, 2, insights.UpcomingTrips)
	assert.Equal(t, "Paris", insights.MostVisited)
	assert.Equal(t, 1000.0, insights.TotalExpenses)

	require.Len(t, insights.PerTrip, 2)
	assert.Equal(t, DestinationSpend{Destination: "Tokyo", Amount: 600}, insights.PerTrip[0])
	assert.Equal(t, DestinationSpend{Destination: "Paris", Amount: 400}, insights.PerTrip[1])

	require.Len(t, insights.Cumulative, 3)
	assert.Equal(t, CumulativePoint{Date: "2026-09-01", Amount: 400, Cumulative: 400}, insights.Cumulative[0])
	assert.Equal(t, CumulativePoint{Date: "2026-10-01", Amount: 600, Cumulative: 1000}, insights.Cumulative[1])
	assert.Equal(t, CumulativePoint{Date: "2026-11-01", Amount: 0, Cumulative: 1000}, insights.Cumulative[2])
}

func TestInsightsUpcomingMatchesReminders(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	// Late evening west of UTC. Trips starting on the local calendar day
	// count as upcoming and as due reminders.
	loc := time.FixedZone("UTC-5", -5*60*60)
	svc.now = func() time.Time { return time.Date(2026, 9, 15, 20, 0, 0, 0, loc) }

	mustCreateTrip(t, svc, 1, "Paris", "2026-09-15", "2026-09-20")

	insights, err := svc.Insights(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, insights.UpcomingTrips)

	reminders, err := svc.Reminders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, 0, reminders[0].DaysLeft)
}

func TestInsightsMostVisitedTieBreak(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)
	svc.now = func() time.Time { return date("2026-01-01") }

	mustCreateTrip(t, svc, 1, "Tokyo", "2026-09-01", "2026-09-07")
	mustCreateTrip(t, svc, 1, "Paris", "2026-10-01", "2026-10-07")

	insights, err := svc.Insights(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Paris", insights.MostVisited)
}

func TestInsightsEmpty(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	insights, err := svc.Insights(context.Background(), 1)
	require.NoError(t, err)
	assert.Zero(t, insights.TotalTrips)
	assert.Empty(t, insights.MostVisited)
	assert.Empty(t, insights.PerTrip)
	assert.Empty(t, insights.Cumulative)
}

func TestMapPoints(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)

	lat, lon := 41.9, 12.5
	_, err := svc.CreateTrip(context.Background(), 1, "Rome", date("2026-09-01"), date("2026-09-07"), "", &lat, &lon)
	require.NoError(t, err)
	mustCreateTrip(t, svc, 1, "Weekend in Paris", "2026-10-01", "2026-10-07")
	mustCreateTrip(t, svc, 1, "Atlantis", "2026-11-01", "2026-11-07")

	points, err := svc.MapPoints(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "Rome", points[0].Destination)
	assert.Equal(t, 41.9, points[0].Lat)

	// Stored coordinates win; unknown destinations without coordinates drop out.
	assert.Equal(t, "Weekend in Paris", points[1].Destination)
	assert.Equal(t, 48.85, points[1].Lat)
	assert.Equal(t, 2.35, points[1].Lon)
}

func TestReminders(t *testing.T) {
	store := newMemStore()
	svc := newTripService(store)
	svc.now = func() time.Time { return date("2026-09-10") }

	mustCreateTrip(t, svc, 1, "Today", "2026-09-10", "2026-09-12")
	mustCreateTrip(t, svc, 1, "Soon", "2026-09-13", "2026-09-15")
	mustCreateTrip(t, svc, 1, "Later", "2026-09-14", "2026-09-20")
	mustCreateTrip(t, svc, 1, "Past", "2026-09-01", "2026-09-05")

	reminders, err := svc.Reminders(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, reminders, 2)

	assert.Equal(t, "Today", reminders[0].Destination)
	assert.Equal(t, 0, reminders[0].DaysLeft)
	assert.Equal(t, "Soon", reminders[1].Destination)
	assert.Equal(t, 3, reminders[1].DaysLeft)
}
