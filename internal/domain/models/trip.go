package models

import "time"

// Expense categories match the planner UI choices.
const (
	CategoryFlights    = "Flights"
	CategoryHotels     = "Hotels"
	CategoryFood       = "Food"
	CategoryActivities = "Activities"
	CategoryMisc       = "Misc"
)

const DefaultCurrency = "USD"

type Trip struct {
	ID          int             `json:"id"`
	OwnerID     int             `json:"owner_id"`
	Destination string          `json:"destination"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Notes       string          `json:"notes"`
	Lat         *float64        `json:"lat,omitempty"`
	Lon         *float64        `json:"lon,omitempty"`
	Expenses    []Expense       `json:"expenses"`
	Checklist   []ChecklistItem `json:"checklist"`
	CreatedAt   string          `json:"created_at"`
}

type Expense struct {
	ID          int     `json:"id"`
	TripID      int     `json:"trip_id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

type ChecklistItem struct {
	ID     int    `json:"id"`
	TripID int    `json:"trip_id"`
	Text   string `json:"text"`
	Done   bool   `json:"done"`
}

// TotalExpense sums the trip's expense amounts.
func (t *Trip) TotalExpense() float64 {
	var total float64
	for _, e := range t.Expenses {
		total += e.Amount
	}
	return total
}

func ValidCategory(c string) bool {
	switch c {
	case CategoryFlights, CategoryHotels, CategoryFood, CategoryActivities, CategoryMisc:
		return true
	}
	return false
}
