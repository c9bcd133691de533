package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/gorilla/mux"
)

const dateLayout = "2006-01-02"

// pathInt extracts an integer path variable. The router patterns guarantee
// presence, not format.
func pathInt(r *http.Request, name string) (int, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, false
	}
	return v, true
}

type TripResponse struct {
	ID           int                    `json:"id"`
	OwnerID      int                    `json:"owner_id"`
	Destination  string                 `json:"destination"`
	StartDate    string                 `json:"start_date"`
	EndDate      string                 `json:"end_date"`
	Notes        string                 `json:"notes"`
	Lat          *float64               `json:"lat,omitempty"`
	Lon          *float64               `json:"lon,omitempty"`
	TotalExpense float64                `json:"total_expense"`
	Expenses     []models.Expense       `json:"expenses"`
	Checklist    []models.ChecklistItem `json:"checklist"`
}

func toTripResponse(t *models.Trip) TripResponse {
	return TripResponse{
		ID:           t.ID,
		OwnerID:      t.OwnerID,
		Destination:  t.Destination,
		StartDate:    t.StartDate.Format(dateLayout),
		EndDate:      t.EndDate.Format(dateLayout),
		Notes:        t.Notes,
		Lat:          t.Lat,
		Lon:          t.Lon,
		TotalExpense: t.TotalExpense(),
		Expenses:     t.Expenses,
		Checklist:    t.Checklist,
	}
}

type CreateTripRequest struct {
	Destination string   `json:"destination"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Notes       string   `json:"notes"`
	Lat         *float64 `json:"lat,omitempty"`
	Lon         *float64 `json:"lon,omitempty"`
}

type CreateTripResponse struct {
	ID int `json:"id"`
}

func (s *APIServer) createTripHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTripRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		start, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
			return
		}
		end, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
			return
		}

		id, err := s.trips.CreateTrip(r.Context(), currentUser(r).ID, req.Destination, start, end, req.Notes, req.Lat, req.Lon)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, CreateTripResponse{ID: id})
	}
}

func (s *APIServer) listTripsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := s.trips.ListTrips(r.Context(), currentUser(r).ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, summaries)
	}
}

func (s *APIServer) getTripHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}

		trip, err := s.trips.GetTrip(r.Context(), currentUser(r).ID, tripID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, toTripResponse(trip))
	}
}

func (s *APIServer) deleteTripHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}

		if err := s.trips.DeleteTrip(r.Context(), currentUser(r).ID, tripID); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type ExpenseRequest struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
}

type ExpenseResponse struct {
	ID int `json:"id"`
}

func (s *APIServer) addExpenseHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}

		var req ExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id, err := s.trips.AddExpense(r.Context(), currentUser(r).ID, tripID, req.Category, req.Description, req.Amount, req.Currency)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, ExpenseResponse{ID: id})
	}
}

func (s *APIServer) updateExpenseHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}
		index, ok := pathInt(r, "index")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid expense index")
			return
		}

		var req ExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := s.trips.UpdateExpense(r.Context(), currentUser(r).ID, tripID, index, req.Category, req.Description, req.Amount, req.Currency); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func (s *APIServer) deleteExpenseHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}
		index, ok := pathInt(r, "index")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid expense index")
			return
		}

		if err := s.trips.DeleteExpense(r.Context(), currentUser(r).ID, tripID, index); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type ChecklistItemRequest struct {
	Text string `json:"text"`
}

type ChecklistItemResponse struct {
	ID int `json:"id"`
}

func (s *APIServer) addChecklistItemHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}

		var req ChecklistItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		id, err := s.trips.AddChecklistItem(r.Context(), currentUser(r).ID, tripID, req.Text)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusCreated, ChecklistItemResponse{ID: id})
	}
}

type ToggleResponse struct {
	Done bool `json:"done"`
}

func (s *APIServer) toggleChecklistItemHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}
		index, ok := pathInt(r, "index")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid checklist index")
			return
		}

		done, err := s.trips.ToggleChecklistItem(r.Context(), currentUser(r).ID, tripID, index)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, ToggleResponse{Done: done})
	}
}

func (s *APIServer) updateChecklistItemHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}
		index, ok := pathInt(r, "index")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid checklist index")
			return
		}

		var req ChecklistItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := s.trips.UpdateChecklistItem(r.Context(), currentUser(r).ID, tripID, index, req.Text); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func (s *APIServer) deleteChecklistItemHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}
		index, ok := pathInt(r, "index")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid checklist index")
			return
		}

		if err := s.trips.DeleteChecklistItem(r.Context(), currentUser(r).ID, tripID, index); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *APIServer) badgeHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		badge, err := s.trips.Badge(r.Context(), currentUser(r).ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, badge)
	}
}
