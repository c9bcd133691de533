package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/MARELLASUSANNA/TravelViz/internal/avatar"
	"github.com/MARELLASUSANNA/TravelViz/internal/config"
	"github.com/MARELLASUSANNA/TravelViz/internal/domain/models"
	"github.com/MARELLASUSANNA/TravelViz/internal/lib/jwt"
	"github.com/MARELLASUSANNA/TravelViz/internal/service"
	"github.com/go-chi/cors"
	"github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxKeyUser ctxKey = iota
	ctxKeySession
)

type APIServer struct {
	config  *config.Config
	logger  *slog.Logger
	server  *http.Server
	auth    *service.AuthService
	trips   *service.TripService
	admin   *service.AdminService
	avatars *avatar.Store
}

func New(cfg *config.Config, logger *slog.Logger, auth *service.AuthService, trips *service.TripService, admin *service.AdminService, avatars *avatar.Store) *APIServer {
	return &APIServer{
		config: cfg,
		logger: logger,
		server: &http.Server{
			Addr: cfg.ApiHost + ":" + strconv.Itoa(cfg.ApiPort),
		},
		auth:    auth,
		trips:   trips,
		admin:   admin,
		avatars: avatars,
	}
}

func (s *APIServer) Start() error {
	s.logger.Info("Starting server", slog.String("port", strconv.Itoa(s.config.ApiPort)))

	s.configureRouter()

	return s.server.ListenAndServe()
}

func (s *APIServer) MustStart() {
	err := s.Start()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic("Failed to start server: " + err.Error())
	}
}

func (s *APIServer) Stop(ctx context.Context) error {
	defer s.logger.Info("Server successfully stopped")
	return s.server.Shutdown(ctx)
}

func (s *APIServer) configureRouter() {
	router := mux.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.HandleFunc("/api/auth/signup", s.signupHandler()).Methods("POST")
	router.HandleFunc("/api/auth/login", s.loginHandler()).Methods("POST")
	router.HandleFunc("/api/auth/logout", s.authenticate(s.logoutHandler())).Methods("POST")

	router.HandleFunc("/api/profile", s.authenticate(s.getProfileHandler())).Methods("GET")
	router.HandleFunc("/api/profile", s.authenticate(s.updateProfileHandler())).Methods("PUT")
	router.HandleFunc("/api/profile/password", s.authenticate(s.changePasswordHandler())).Methods("PUT")
	router.HandleFunc("/api/profile/avatar/upload-url", s.authenticate(s.avatarUploadURLHandler())).Methods("POST")
	router.HandleFunc("/api/profile/avatar", s.authenticate(s.setAvatarHandler())).Methods("PUT")
	router.HandleFunc("/api/profile/avatar", s.authenticate(s.getAvatarHandler())).Methods("GET")

	router.HandleFunc("/api/trips", s.authenticate(s.listTripsHandler())).Methods("GET")
	router.HandleFunc("/api/trips", s.authenticate(s.createTripHandler())).Methods("POST")
	router.HandleFunc("/api/trips/{id}", s.authenticate(s.getTripHandler())).Methods("GET")
	router.HandleFunc("/api/trips/{id}", s.authenticate(s.deleteTripHandler())).Methods("DELETE")
	router.HandleFunc("/api/trips/{id}/expenses", s.authenticate(s.addExpenseHandler())).Methods("POST")
	router.HandleFunc("/api/trips/{id}/expenses/{index}", s.authenticate(s.updateExpenseHandler())).Methods("PUT")
	router.HandleFunc("/api/trips/{id}/expenses/{index}", s.authenticate(s.deleteExpenseHandler())).Methods("DELETE")
	router.HandleFunc("/api/trips/{id}/checklist", s.authenticate(s.addChecklistItemHandler())).Methods("POST")
	router.HandleFunc("/api/trips/{id}/checklist/{index}/toggle", s.authenticate(s.toggleChecklistItemHandler())).Methods("POST")
	router.HandleFunc("/api/trips/{id}/checklist/{index}", s.authenticate(s.updateChecklistItemHandler())).Methods("PUT")
	router.HandleFunc("/api/trips/{id}/checklist/{index}", s.authenticate(s.deleteChecklistItemHandler())).Methods("DELETE")

	router.HandleFunc("/api/badge", s.authenticate(s.badgeHandler())).Methods("GET")
	router.HandleFunc("/api/insights", s.authenticate(s.insightsHandler())).Methods("GET")
	router.HandleFunc("/api/map", s.authenticate(s.mapHandler())).Methods("GET")
	router.HandleFunc("/api/reminders", s.authenticate(s.remindersHandler())).Methods("GET")
	router.HandleFunc("/api/chat", s.authenticate(s.chatHandler())).Methods("POST")

	router.HandleFunc("/api/admin/users", s.authenticate(s.adminListUsersHandler())).Methods("GET")
	router.HandleFunc("/api/admin/users/{username}", s.authenticate(s.adminDeleteUserHandler())).Methods("DELETE")
	router.HandleFunc("/api/admin/users/{username}/reset-avatar", s.authenticate(s.adminResetAvatarHandler())).Methods("POST")
	router.HandleFunc("/api/admin/trips", s.authenticate(s.adminListTripsHandler())).Methods("GET")
	router.HandleFunc("/api/admin/trips/{id}", s.authenticate(s.adminDeleteTripHandler())).Methods("DELETE")

	s.server.Handler = router
}

// authenticate parses the bearer token, resolves its session and puts the
// logged-in user into the request context.
func (s *APIServer) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenHeader := r.Header.Get("Authorization")
		if tokenHeader == "" {
			s.writeErrorMessage(w, http.StatusUnauthorized, "missing token")
			return
		}

		parts := strings.Split(tokenHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.writeErrorMessage(w, http.StatusUnauthorized, "invalid token format")
			return
		}

		claims, err := jwt.ParseToken(parts[1], s.config.JwtSecret)
		if err != nil {
			s.writeErrorMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		sessionID, ok := claims["sid"].(string)
		if !ok {
			s.writeErrorMessage(w, http.StatusUnauthorized, "invalid token")
			return
		}

		user, err := s.auth.Authenticate(r.Context(), sessionID)
		if err != nil {
			s.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUser, user)
		ctx = context.WithValue(ctx, ctxKeySession, sessionID)
		next(w, r.WithContext(ctx))
	}
}

func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(ctxKeyUser).(*models.User)
	return user
}

func currentSession(r *http.Request) string {
	sid, _ := r.Context().Value(ctxKeySession).(string)
	return sid
}
