// Package api provides the HTTP status and admin surface of the bot.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/gracechain/versebot/internal/bot"
	"github.com/gracechain/versebot/internal/config"
	"github.com/gracechain/versebot/internal/models"
	"github.com/gracechain/versebot/internal/publisher"
	"github.com/gracechain/versebot/internal/scheduler"
	"github.com/gracechain/versebot/internal/storage"
)

// Server represents the API server.
type Server struct {
	router    *chi.Mux
	handlers  *Handlers
	bot       *bot.Bot
	scheduler *scheduler.Scheduler
	addr      string
	server    *http.Server
}

// NewServer creates a new API server.
func NewServer(store *storage.Store, quota *publisher.Quota, b *bot.Bot, sched *scheduler.Scheduler, cfg *config.Config) *Server {
	handlers := NewHandlers(store, quota, cfg.Limits)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	srv := &Server{
		router:    r,
		handlers:  handlers,
		bot:       b,
		scheduler: sched,
		addr:      cfg.HTTPAddr,
	}

	// Routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", srv.HealthCheck)
		r.Get("/usage", handlers.GetUsage)
		r.Get("/posts", handlers.GetPosts)
	})

	// Admin routes (no auth for development)
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/jobs", srv.AdminGetJobs)
		r.Post("/jobs/{name}/run", srv.AdminRunJob)
		r.Post("/run/{mode}", srv.AdminRunMode)
	})

	return srv
}

// Start starts the API server.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info().Str("addr", s.addr).Msg("Starting API server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// HealthCheck reports liveness and the bot's run state.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	state := models.StateIdle
	if s.bot != nil {
		state = s.bot.State()
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"state":  state,
		"time":   time.Now().UTC(),
	})
}

// ============================================================================
// ADMIN HANDLERS
// ============================================================================

// AdminGetJobs returns the status of all scheduled jobs.
func (s *Server) AdminGetJobs(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not available")
		return
	}

	jobs := s.scheduler.GetJobStatus()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

// AdminRunJob runs a specific job by name.
func (s *Server) AdminRunJob(w http.ResponseWriter, r *http.Request) {
	if s.scheduler == nil {
		respondError(w, http.StatusServiceUnavailable, "Scheduler not available")
		return
	}

	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "Job name is required")
		return
	}

	if err := s.scheduler.RunJobNow(name); err != nil {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Job triggered: " + name,
	})
}

// AdminRunMode triggers one bot run in the given mode.
func (s *Server) AdminRunMode(w http.ResponseWriter, r *http.Request) {
	if s.bot == nil {
		respondError(w, http.StatusServiceUnavailable, "Bot not available")
		return
	}

	mode, err := models.ParseRunMode(chi.URLParam(r, "mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := s.bot.Run(ctx, mode); err != nil {
			log.Error().Err(err).Str("mode", string(mode)).Msg("Admin-triggered run failed")
		}
	}()

	respondJSON(w, http.StatusAccepted, map[string]string{
		"status":  "ok",
		"message": "Run triggered: " + string(mode),
	})
}
