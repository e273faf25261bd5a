package worker

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptverse/internal/db/gorm"
	"github.com/thebtf/promptverse/internal/submission"
	"github.com/thebtf/promptverse/internal/worker/sse"
	"github.com/thebtf/promptverse/pkg/models"
)

const msgMissingFields = "Missing required fields"

// handleListPrompts godoc
//
//	@Summary		List prompts
//	@Description	Paginated prompts, newest first, filtered by category and a title/tag substring
//	@Tags			prompts
//	@Produce		json
//	@Param			page		query		int		false	"Page number (1-based)"
//	@Param			pageSize	query		int		false	"Page size (max 200)"
//	@Param			category	query		string	false	"Category or All"
//	@Param			query		query		string	false	"Case-insensitive substring"
//	@Success		200			{object}	models.PromptPage
//	@Router			/api/prompts [get]
func (s *Service) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListFilter{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "pageSize", gorm.DefaultPageSize),
		Category: q.Get("category"),
		Query:    strings.TrimSpace(q.Get("query")),
	}
	if filter.Category == "" || strings.EqualFold(filter.Category, models.CategoryAll) {
		filter.Category = models.CategoryAll
	}

	defer s.timed(r.Context(), "list", time.Now())
	page, err := s.promptStore.ListPrompts(r.Context(), clientID(r.Context()), filter)
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// handleRecentPrompts godoc
//
//	@Summary	Most recent prompts store-wide
//	@Tags		prompts
//	@Produce	json
//	@Param		limit	query	int	false	"Max rows (1-200, default 50)"
//	@Success	200		{array}	models.Prompt
//	@Router		/api/prompts/recent [get]
func (s *Service) handleRecentPrompts(w http.ResponseWriter, r *http.Request) {
	defer s.timed(r.Context(), "recent", time.Now())
	prompts, err := s.promptStore.GetRecentPrompts(r.Context(), clientID(r.Context()),
		queryInt(r, "limit", gorm.DefaultListLimit))
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

// handlePopularPrompts godoc
//
//	@Summary	Most liked prompts
//	@Tags		prompts
//	@Produce	json
//	@Param		limit	query	int	false	"Max rows (1-200, default 50)"
//	@Success	200		{array}	models.Prompt
//	@Router		/api/prompts/popular [get]
func (s *Service) handlePopularPrompts(w http.ResponseWriter, r *http.Request) {
	defer s.timed(r.Context(), "popular", time.Now())
	prompts, err := s.promptStore.GetPopularPrompts(r.Context(), clientID(r.Context()),
		queryInt(r, "limit", gorm.DefaultListLimit))
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, prompts)
}

// handleCategoryCounts godoc
//
//	@Summary	Prompt count per category plus the All total
//	@Tags		prompts
//	@Produce	json
//	@Success	200	{object}	map[string]int64
//	@Router		/api/prompts/category-counts [get]
func (s *Service) handleCategoryCounts(w http.ResponseWriter, r *http.Request) {
	defer s.timed(r.Context(), "category_counts", time.Now())
	counts, err := s.promptStore.GetCategoryCounts(r.Context())
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (s *Service) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	defer s.timed(r.Context(), "get", time.Now())
	p, err := s.promptStore.GetPrompt(r.Context(), clientID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleHandoff returns what the model invocation client needs to run a prompt.
func (s *Service) handleHandoff(w http.ResponseWriter, r *http.Request) {
	p, err := s.promptStore.GetPrompt(r.Context(), clientID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, models.Handoff{
		PromptID:   p.ID,
		Content:    p.Content,
		Category:   p.Category,
		Model:      resolveModel(p),
		TokenCount: s.tokens.Count(p.Content),
	})
}

// resolveModel prefers the prompt's suggestion, then the category default.
func resolveModel(p *models.Prompt) string {
	if p.ModelSuggestion != "" {
		return p.ModelSuggestion
	}
	if m := models.MediaModelFor(p.Category); m != "" {
		return m
	}
	return models.ModelTextFlash
}

// handleCreatePrompt godoc
//
//	@Summary		Submit a prompt
//	@Description	Likes are honored only for admin-unlocked clients; copies start at zero
//	@Tags			prompts
//	@Accept			json
//	@Produce		json
//	@Param			prompt	body		models.NewPrompt	true	"Prompt"
//	@Success		200		{object}	models.Prompt
//	@Failure		400		{string}	string
//	@Failure		500		{string}	string
//	@Router			/api/prompts [post]
func (s *Service) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var in models.NewPrompt
	if err := decodeJSON(w, r, &in); err != nil {
		http.Error(w, msgBadBody, http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	client := clientID(ctx)
	unlocked, err := s.adminStore.IsUnlocked(ctx, client)
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}

	p, err := submission.Normalize(in, unlocked, s.now().UnixMilli())
	if err != nil {
		writeError(w, r, err, badRequestMessage(err))
		return
	}

	created, err := s.promptStore.CreatePrompt(ctx, p)
	if err != nil {
		log.Error().Err(err).Str("promptId", p.ID).Str("clientId", client).Msg("Failed to insert prompt")
		http.Error(w, "Failed to insert prompt", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordSubmission(ctx, "create")

	likes := created.Likes
	s.sseBroadcaster.Publish(sse.Event{
		Type:     sse.EventPromptCreated,
		PromptID: created.ID,
		Title:    created.Title,
		Category: string(created.Category),
		Likes:    &likes,
	})
	writeJSON(w, http.StatusOK, created)
}

// handleUpdatePrompt godoc
//
//	@Summary	Edit a prompt's text fields and category
//	@Tags		prompts
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Prompt ID"
//	@Param		edit	body		models.PromptEdit	true	"Edit"
//	@Success	200		{object}	models.Prompt
//	@Failure	400		{string}	string
//	@Failure	404		{string}	string
//	@Router		/api/prompts/{id} [put]
func (s *Service) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	var in models.PromptEdit
	if err := decodeJSON(w, r, &in); err != nil {
		http.Error(w, msgBadBody, http.StatusBadRequest)
		return
	}
	edit, err := submission.NormalizeEdit(in)
	if err != nil {
		writeError(w, r, err, badRequestMessage(err))
		return
	}

	ctx := r.Context()
	updated, err := s.promptStore.UpdatePrompt(ctx, clientID(ctx), chi.URLParam(r, "id"), edit)
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	s.metrics.RecordSubmission(ctx, "update")
	s.sseBroadcaster.Publish(sse.Event{
		Type:     sse.EventPromptUpdated,
		PromptID: updated.ID,
		Title:    updated.Title,
		Category: string(updated.Category),
	})
	writeJSON(w, http.StatusOK, updated)
}

// badRequestMessage distinguishes a bad category from missing fields.
func badRequestMessage(err error) string {
	if errors.Is(err, submission.ErrUnknownCategory) {
		return "Invalid category"
	}
	return msgMissingFields
}
