package api

import (
	"encoding/json"
	"net/http"

	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
)

func (s *APIServer) getProfileHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)

		badge, err := s.trips.Badge(r.Context(), user.ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, struct {
			*models.User
			Badge models.Badge `json:"badge"`
		}{User: user, Badge: badge})
	}
}

func (s *APIServer) updateProfileHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile models.Profile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := s.auth.UpdateProfile(r.Context(), currentUser(r).ID, profile); err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, profile)
	}
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password"`
}

func (s *APIServer) changePasswordHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := s.auth.ChangePassword(r.Context(), currentUser(r).ID, req.NewPassword); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type AvatarUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// avatarUploadURLHandler hands out a presigned PUT URL; the client uploads
// the picture there and then confirms the key via setAvatarHandler.
func (s *APIServer) avatarUploadURLHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		key, url, err := s.avatars.PresignUpload(r.Context(), currentUser(r).ID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, AvatarUploadResponse{Key: key, URL: url})
	}
}

type SetAvatarRequest struct {
	Key string `json:"key"`
}

func (s *APIServer) setAvatarHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SetAvatarRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := s.auth.SetAvatar(r.Context(), currentUser(r).ID, req.Key); err != nil {
			s.writeError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

type AvatarResponse struct {
	URL string `json:"url"`
}

func (s *APIServer) getAvatarHandler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user.AvatarKey == nil {
			s.writeErrorMessage(w, http.StatusNotFound, "no profile picture set")
			return
		}

		url, err := s.avatars.PresignDownload(r.Context(), *user.AvatarKey)
		if err != nil {
			s.writeError(w, err)
			return
		}

		s.writeJSON(w, http.StatusOK, AvatarResponse{URL: url})
	}
}
