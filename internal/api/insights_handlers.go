package api

import (
	"encoding/json"
	"net/http"

	"github.com/MARELLASUSANNA/TravelViz/internal/chat"
)

func (s *APIServer) insightsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		insights, err := s.trips.Insights(r.Context(), currentUser(r).ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, insights)
	}
}

func (s *APIServer) mapHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		points, err := s.trips.MapPoints(r.Context(), currentUser(r).ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, points)
	}
}

func (s *APIServer) remindersHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		reminders, err := s.trips.Reminders(r.Context(), currentUser(r).ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, reminders)
	}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func (s *APIServer) chatHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		s.writeJSON(w, http.StatusOK, ChatResponse{Reply: chat.Reply(req.Message)})
	}
}
