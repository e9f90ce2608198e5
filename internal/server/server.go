package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/claude/gymtrack/internal/models"
	"github.com/claude/gymtrack/internal/tracker"
	"github.com/go-chi/chi/v5"
)

// AccountStore is the account repository the account routes need.
// *storage.DB implements it.
type AccountStore interface {
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	UserExists(ctx context.Context, username, email string) (bool, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	UpdateBodyMetrics(ctx context.Context, id int, heightCm, weightKg float64) (*models.User, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker  *tracker.Tracker
	accounts AccountStore
	log      *slog.Logger
	apiKey   string
	router   chi.Router
}

// New creates a new Server with all routes configured. accounts may be nil,
// in which case the account routes are not mounted.
func New(tr *tracker.Tracker, accounts AccountStore, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		tracker:  tr,
		accounts: accounts,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler, such as the MCP endpoint, behind the API key.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.With(APIKeyAuth(s.apiKey)).Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/api/v1/health", s.handleHealth)

	s.router.Route("/api/v1/workout", func(r chi.Router) {
		r.Get("/", s.handleCurrentWorkout)
		r.Get("/report", s.handleWorkoutReport)

		// Mutations (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/exercises", s.handleLogExercise)
			r.Delete("/last", s.handleRemoveLast)
			r.Put("/title", s.handleSetTitle)
			r.Post("/save", s.handleSaveWorkout)
		})
	})

	s.router.Get("/api/v1/history", s.handleHistory)
	s.router.Get("/api/v1/history/report", s.handleHistoryReport)
	s.router.Get("/api/v1/history/export.xlsx", s.handleHistoryExport)

	s.router.Post("/api/v1/bmi", s.handleBMI)

	if s.accounts != nil {
		s.router.Route("/api/v1/accounts", func(r chi.Router) {
			r.Post("/", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.With(APIKeyAuth(s.apiKey)).Get("/{id}", s.handleGetAccount)
			r.With(APIKeyAuth(s.apiKey)).Put("/{id}/metrics", s.handleUpdateMetrics)
		})
	}
}
