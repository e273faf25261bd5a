// Package worker provides the HTTP service for promptverse.
package worker

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/thebtf/promptverse/internal/authors"
	"github.com/thebtf/promptverse/internal/config"
	"github.com/thebtf/promptverse/internal/db/gorm"
	"github.com/thebtf/promptverse/internal/metrics"
	"github.com/thebtf/promptverse/internal/seed"
	"github.com/thebtf/promptverse/internal/tokens"
	"github.com/thebtf/promptverse/internal/worker/sse"

	_ "github.com/thebtf/promptverse/docs" // registers the swagger spec
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Options carries the dependencies of a Service.
type Options struct {
	Version string
	Config  *config.Config
	Store   *gorm.Store
	Seeder  *seed.Seeder
	Authors *authors.Registry
	Metrics *metrics.Metrics
}

// Service serves the prompt gallery API.
type Service struct {
	version string
	config  *config.Config

	store           *gorm.Store
	promptStore     *gorm.PromptStore
	engagementStore *gorm.EngagementStore
	adminStore      *gorm.AdminStore
	seeder          *seed.Seeder
	authors         *authors.Registry
	tokens          *tokens.Counter
	metrics         *metrics.Metrics
	sseBroadcaster  *sse.Broadcaster
	router          chi.Router
	startTime       time.Time
	ready           atomic.Bool
	now             func() time.Time
}

// NewService wires stores and collaborators into a router. The service
// answers API calls only after MarkReady.
func NewService(opts Options) *Service {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	reg := opts.Authors
	if reg == nil {
		reg = authors.Default()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New()
	}

	svc := &Service{
		version:         opts.Version,
		config:          cfg,
		store:           opts.Store,
		promptStore:     gorm.NewPromptStore(opts.Store),
		engagementStore: gorm.NewEngagementStore(opts.Store),
		adminStore:      gorm.NewAdminStore(opts.Store),
		seeder:          opts.Seeder,
		authors:         reg,
		tokens:          tokens.NewCounter(),
		metrics:         m,
		sseBroadcaster:  sse.NewBroadcaster(),
		router:          chi.NewRouter(),
		startTime:       time.Now(),
		now:             time.Now,
	}

	if svc.seeder != nil {
		svc.seeder.OnProgress(svc.publishSeedProgress)
	}

	svc.setupRoutes()
	return svc
}

// Handler returns the root HTTP handler.
func (s *Service) Handler() http.Handler {
	return s.router
}

// MarkReady lets API requests through.
func (s *Service) MarkReady() {
	s.ready.Store(true)
}

// Broadcaster returns the activity stream.
func (s *Service) Broadcaster() *sse.Broadcaster {
	return s.sseBroadcaster
}

func (s *Service) setupRoutes() {
	r := s.router
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(s.clientIdentity)

	r.Get("/health", s.handleHealth)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/ready", s.handleReady)

		r.Group(func(r chi.Router) {
			r.Use(s.requireReady)

			r.Get("/prompts", s.handleListPrompts)
			r.Post("/prompts", s.handleCreatePrompt)
			r.Get("/prompts/recent", s.handleRecentPrompts)
			r.Get("/prompts/popular", s.handlePopularPrompts)
			r.Get("/prompts/category-counts", s.handleCategoryCounts)
			r.Get("/prompts/{id}", s.handleGetPrompt)
			r.Put("/prompts/{id}", s.handleUpdatePrompt)
			r.Get("/prompts/{id}/handoff", s.handleHandoff)
			r.Post("/prompts/{id}/like-toggle", s.handleToggleLike)
			r.Post("/prompts/{id}/copy", s.handleCopy)
			r.Post("/prompts/{id}/rating", s.handleSetRating)

			r.Get("/admin/status", s.handleAdminStatus)
			r.Post("/admin/unlock", s.handleAdminUnlock)

			r.Get("/authors/{name}", s.handleGetAuthor)
			r.Get("/seed/status", s.handleSeedStatus)
			r.Get("/stats", s.handleStats)
			r.Get("/events", s.sseBroadcaster.HandleSSE)
		})

		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Not found", http.StatusNotFound)
		})
	})

	if s.config.StaticRoot != "" {
		r.NotFound(spaHandler(s.config.StaticRoot))
	}
}

// requireReady rejects API calls until startup has finished.
func (s *Service) requireReady(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.ready.Load() {
			http.Error(w, "Service starting", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		ev := log.Debug()
		if status >= http.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}

// publishSeedProgress forwards seeder progress to the activity stream.
func (s *Service) publishSeedProgress(st seed.Status) {
	s.sseBroadcaster.Publish(sse.Event{Type: sse.EventSeedProgress, Data: st})
}

// timed records the latency of a read query.
func (s *Service) timed(ctx context.Context, kind string, start time.Time) {
	s.metrics.RecordQuery(ctx, kind, time.Since(start))
}
