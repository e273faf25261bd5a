package worker

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/thebtf/promptverse/internal/metrics"
	"github.com/thebtf/promptverse/internal/seed"
)

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
	Ready    bool   `json:"ready"`
}

// handleHealth godoc
//
//	@Summary	Liveness and database reachability
//	@Tags		system
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Failure	503	{object}	HealthResponse
//	@Router		/health [get]
func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:   "ok",
		Version:  s.version,
		Uptime:   time.Since(s.startTime).Round(time.Second).String(),
		Database: "ok",
		Ready:    s.ready.Load(),
	}
	status := http.StatusOK
	if err := s.store.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = err.Error()
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

func (s *Service) handleVersion(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

func (s *Service) handleReady(w http.ResponseWriter, _ *http.Request) {
	if !s.ready.Load() {
		http.Error(w, "Service starting", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleGetAuthor godoc
//
//	@Summary		Author profile
//	@Description	Unknown names get a generic profile
//	@Tags			authors
//	@Produce		json
//	@Param			name	path		string	true	"Author display name"
//	@Success		200		{object}	models.AuthorProfile
//	@Router			/api/authors/{name} [get]
func (s *Service) handleGetAuthor(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.authors.Lookup(chi.URLParam(r, "name")))
}

// handleSeedStatus reports background growth progress.
func (s *Service) handleSeedStatus(w http.ResponseWriter, _ *http.Request) {
	if s.seeder == nil {
		writeJSON(w, http.StatusOK, seed.Status{})
		return
	}
	writeJSON(w, http.StatusOK, s.seeder.Status())
}

// StatsResponse bundles the metrics snapshot with stream and seeding state.
type StatsResponse struct {
	Metrics     metrics.Snapshot `json:"metrics"`
	Subscribers int              `json:"subscribers"`
	Seed        seed.Status      `json:"seed"`
}

func (s *Service) handleStats(w http.ResponseWriter, _ *http.Request) {
	resp := StatsResponse{
		Metrics:     s.metrics.GetSnapshot(),
		Subscribers: s.sseBroadcaster.SubscriberCount(),
	}
	if s.seeder != nil {
		resp.Seed = s.seeder.Status()
	}
	writeJSON(w, http.StatusOK, resp)
}
