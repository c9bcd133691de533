package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *APIServer) adminListUsersHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.admin.ListUsers(r.Context(), currentUser(r))
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, users)
	}
}

func (s *APIServer) adminDeleteUserHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]

		if err := s.admin.DeleteUser(r.Context(), currentUser(r), username); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *APIServer) adminResetAvatarHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		username := mux.Vars(r)["username"]

		if err := s.admin.ResetAvatar(r.Context(), currentUser(r), username); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *APIServer) adminListTripsHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		trips, err := s.admin.ListAllTrips(r.Context(), currentUser(r))
		if err != nil {
			s.writeError(w, err)
			return
		}

		responses := make([]TripResponse, 0, len(trips))
		for i := range trips {
			responses = append(responses, toTripResponse(&trips[i]))
		}

		s.writeJSON(w, http.StatusOK, responses)
	}
}

func (s *APIServer) adminDeleteTripHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		tripID, ok := pathInt(r, "id")
		if !ok {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid trip id")
			return
		}

		if err := s.admin.DeleteAnyTrip(r.Context(), currentUser(r), tripID); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
