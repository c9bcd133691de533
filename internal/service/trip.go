package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/geo"
	"github.com/MARELLASUSANNA/TravelViz/internal/storage"
)

const dateLayout = "2006-01-02"

// TripService implements trip CRUD and the read models derived from trips:
// badges, insights, map points and reminders. Every mutating operation is
// scoped to the authenticated owner.
type TripService struct {
	trips  TripRepository
	logger *slog.Logger
	now    func() time.Time
}

func NewTripService(trips TripRepository, logger *slog.Logger) *TripService {
	return &TripService{
		trips:  trips,
		logger: logger,
		now:    time.Now,
	}
}

type TripSummary struct {
	ID             int      `json:"id"`
	Destination    string   `json:"destination"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Notes          string   `json:"notes"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
	TotalExpense   float64  `json:"total_expense"`
	ExpenseCount   int      `json:"expense_count"`
	ChecklistDone  int      `json:"checklist_done"`
	ChecklistTotal int      `json:"checklist_total"`
}

func summarize(t *models.Trip) TripSummary {
	done := 0
	for _, item := range t.Checklist {
		if item.Done {
			done++
		}
	}
	return TripSummary{
		ID:             t.ID,
		Destination:    t.Destination,
		StartDate:      t.StartDate.Format(dateLayout),
		EndDate:        t.EndDate.Format(dateLayout),
		Notes:          t.Notes,
		Lat:            t.Lat,
		Lon:            t.Lon,
		TotalExpense:   t.TotalExpense(),
		ExpenseCount:   len(t.Expenses),
		ChecklistDone:  done,
		ChecklistTotal: len(t.Checklist),
	}
}

func (s *TripService) CreateTrip(ctx context.Context, ownerID int, destination string, start, end time.Time, notes string, lat, lon *float64) (int, error) {
	if destination == "" {
		return 0, fmt.Errorf("%w: destination is required", ErrValidation)
	}
	if start.After(end) {
		return 0, ErrInvalidRange
	}

	trip := &models.Trip{
		OwnerID:     ownerID,
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Notes:       notes,
		Lat:         lat,
		Lon:         lon,
	}

	id, err := s.trips.SaveTrip(ctx, trip)
	if err != nil {
		s.logger.Error("Failed to save trip", "error", err)
		return 0, err
	}

	s.logger.Info("Trip created", slog.Int("trip_id", id), slog.String("destination", destination))

	return id, nil
}

// ownedTrip loads a trip and verifies the caller owns it.
func (s *TripService) ownedTrip(ctx context.Context, callerID, tripID int) (*models.Trip, error) {
	trip, err := s.trips.GetTrip(ctx, tripID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if trip.OwnerID != callerID {
		return nil, ErrNotOwner
	}
	return trip, nil
}

func (s *TripService) GetTrip(ctx context.Context, callerID, tripID int) (*models.Trip, error) {
	return s.ownedTrip(ctx, callerID, tripID)
}

func (s *TripService) ListTrips(ctx context.Context, ownerID int) ([]TripSummary, error) {
	trips, err := s.trips.ListTrips(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]TripSummary, 0, len(trips))
	for i := range trips {
		summaries = append(summaries, summarize(&trips[i]))
	}

	return summaries, nil
}

// DeleteTrip removes the trip together with its expenses and checklist.
func (s *TripService) DeleteTrip(ctx context.Context, callerID, tripID int) error {
	if _, err := s.ownedTrip(ctx, callerID, tripID); err != nil {
		return err
	}
	if err := s.trips.DeleteTrip(ctx, tripID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("Trip deleted", slog.Int("trip_id", tripID))

	return nil
}

func (s *TripService) AddExpense(ctx context.Context, callerID, tripID int, category, description string, amount float64, currency string) (int, error) {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return 0, err
	}
	if amount < 0 {
		return 0, ErrInvalidAmount
	}
	if description == "" {
		return 0, fmt.Errorf("%w: description is required", ErrValidation)
	}
	if !models.ValidCategory(category) {
		return 0, fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}

	return s.trips.AddExpense(ctx, models.Expense{
		TripID:      trip.ID,
		Category:    category,
		Description: description,
		Amount:      amount,
		Currency:    currency,
	})
}

func (s *TripService) UpdateExpense(ctx context.Context, callerID, tripID, index int, category, description string, amount float64, currency string) error {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(trip.Expenses) {
		return ErrOutOfRange
	}
	if amount < 0 {
		return ErrInvalidAmount
	}
	if !models.ValidCategory(category) {
		return fmt.Errorf("%w: unknown category %q", ErrValidation, category)
	}
	if currency == "" {
		currency = models.DefaultCurrency
	}

	expense := trip.Expenses[index]
	expense.Category = category
	expense.Description = description
	expense.Amount = amount
	expense.Currency = currency

	return s.trips.UpdateExpense(ctx, expense)
}

func (s *TripService) DeleteExpense(ctx context.Context, callerID, tripID, index int) error {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(trip.Expenses) {
		return ErrOutOfRange
	}

	return s.trips.DeleteExpense(ctx, trip.Expenses[index].ID)
}

func (s *TripService) AddChecklistItem(ctx context.Context, callerID, tripID int, text string) (int, error) {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, fmt.Errorf("%w: item text is required", ErrValidation)
	}

	return s.trips.AddChecklistItem(ctx, trip.ID, text)
}

// ToggleChecklistItem flips the done flag of the item at the given position.
func (s *TripService) ToggleChecklistItem(ctx context.Context, callerID, tripID, index int) (bool, error) {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(trip.Checklist) {
		return false, ErrOutOfRange
	}

	item := trip.Checklist[index]
	if err := s.trips.SetChecklistItemDone(ctx, item.ID, !item.Done); err != nil {
		return false, err
	}

	return !item.Done, nil
}

func (s *TripService) UpdateChecklistItem(ctx context.Context, callerID, tripID, index int, text string) error {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(trip.Checklist) {
		return ErrOutOfRange
	}
	if text == "" {
		return fmt.Errorf("%w: item text is required", ErrValidation)
	}

	return s.trips.UpdateChecklistItemText(ctx, trip.Checklist[index].ID, text)
}

func (s *TripService) DeleteChecklistItem(ctx context.Context, callerID, tripID, index int) error {
	trip, err := s.ownedTrip(ctx, callerID, tripID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(trip.Checklist) {
		return ErrOutOfRange
	}

	return s.trips.DeleteChecklistItem(ctx, trip.Checklist[index].ID)
}

// Badge computes the owner's badge from their trip count. Same history, same
// badge.
func (s *TripService) Badge(ctx context.Context, ownerID int) (models.Badge, error) {
	trips, err := s.trips.ListTrips(ctx, ownerID)
	if err != nil {
		return models.Badge{}, err
	}
	return models.ComputeBadge(len(trips)), nil
}

type DestinationSpend struct {
	Destination string  `json:"destination"`
	Amount      float64 `json:"amount"`
}

type CumulativePoint struct {
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
	Cumulative float64 `json:"cumulative"`
}

type Insights struct {
	TotalTrips    int                `json:"total_trips"`
	UpcomingTrips int                `json:"upcoming_trips"`
	MostVisited   string             `json:"most_visited"`
	TotalExpenses float64            `json:"total_expenses"`
	PerTrip       []DestinationSpend `json:"per_trip"`
	Cumulative    []CumulativePoint  `json:"cumulative"`
}

// Insights aggregates the owner's trips for the dashboard: totals, the most
// visited destination, spend per destination and cumulative spend over time.
func (s *TripService) Insights(ctx context.Context, ownerID int) (*Insights, error) {
	trips, err := s.trips.ListTrips(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	res := &Insights{
		TotalTrips:  len(trips),
		MostVisited: "",
		PerTrip:     []DestinationSpend{},
		Cumulative:  []CumulativePoint{},
	}

	visits := map[string]int{}
	perDest := map[string]float64{}
	perDate := map[string]float64{}
	for i := range trips {
		t := &trips[i]
		visits[t.Destination]++
		total := t.TotalExpense()
		perDest[t.Destination] += total
		perDate[t.StartDate.Format(dateLayout)] += total
		res.TotalExpenses += total
		if !t.StartDate.Before(today) {
			res.UpcomingTrips++
		}
	}

	for dest, count := range visits {
		if res.MostVisited == "" ||
			count > visits[res.MostVisited] ||
			(count == visits[res.MostVisited] && dest < res.MostVisited) {
			res.MostVisited = dest
		}
	}

	for dest, amount := range perDest {
		res.PerTrip = append(res.PerTrip, DestinationSpend{Destination: dest, Amount: amount})
	}
	sort.Slice(res.PerTrip, func(i, j int) bool {
		if res.PerTrip[i].Amount != res.PerTrip[j].Amount {
			return res.PerTrip[i].Amount > res.PerTrip[j].Amount
		}
		return res.PerTrip[i].Destination < res.PerTrip[j].Destination
	})

	dates := make([]string, 0, len(perDate))
	for d := range perDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	var running float64
	for _, d := range dates {
		running += perDate[d]
		res.Cumulative = append(res.Cumulative, CumulativePoint{Date: d, Amount: perDate[d], Cumulative: running})
	}

	return res, nil
}

type MapPoint struct {
	Destination string  `json:"destination"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	StartDate   string  `json:"start_date"`
}

// MapPoints returns the owner's trips that can be placed on a map. Trips
// without stored coordinates fall back to a destination centroid; trips that
// resolve to nothing are omitted.
func (s *TripService) MapPoints(ctx context.Context, ownerID int) ([]MapPoint, error) {
	trips, err := s.trips.ListTrips(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	points := []MapPoint{}
	for i := range trips {
		t := &trips[i]
		var lat, lon float64
		switch {
		case t.Lat != nil && t.Lon != nil:
			lat, lon = *t.Lat, *t.Lon
		default:
			p, ok := geo.FallbackCoords(t.Destination)
			if !ok {
				continue
			}
			lat, lon = p.Lat, p.Lon
		}
		points = append(points, MapPoint{
			Destination: t.Destination,
			Lat:         lat,
			Lon:         lon,
			StartDate:   t.StartDate.Format(dateLayout),
		})
	}

	return points, nil
}

type Reminder struct {
	TripID      int    `json:"trip_id"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	DaysLeft    int    `json:"days_left"`
}

// Reminders lists the owner's trips starting within the next three days.
func (s *TripService) Reminders(ctx context.Context, ownerID int) ([]Reminder, error) {
	trips, err := s.trips.ListTrips(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	reminders := []Reminder{}
	for i := range trips {
		t := &trips[i]
		start := time.Date(t.StartDate.Year(), t.StartDate.Month(), t.StartDate.Day(), 0, 0, 0, 0, time.UTC)
		daysLeft := int(start.Sub(today).Hours() / 24)
		if daysLeft >= 0 && daysLeft <= 3 {
			reminders = append(reminders, Reminder{
				TripID:      t.ID,
				Destination: t.Destination,
				StartDate:   t.StartDate.Format(dateLayout),
				DaysLeft:    daysLeft,
			})
		}
	}

	return reminders, nil
}
