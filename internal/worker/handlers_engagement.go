package worker

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/thebtf/promptverse/internal/worker/sse"
)

// CopyResponse is returned by the copy counter endpoint.
type CopyResponse struct {
	Copies int64 `json:"copies"`
}

// RatingRequest and RatingResponse carry a 1 to 5 star rating.
type RatingRequest struct {
	Rating int `json:"rating"`
}

type RatingResponse struct {
	Rating int `json:"rating"`
}

// handleToggleLike godoc
//
//	@Summary		Toggle the caller's like
//	@Description	The server decides the new state from the caller's stored like row
//	@Tags			engagement
//	@Produce		json
//	@Param			id	path		string	true	"Prompt ID"
//	@Success		200	{object}	models.LikeState
//	@Failure		404	{string}	string
//	@Router			/api/prompts/{id}/like-toggle [post]
func (s *Service) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	state, err := s.engagementStore.ToggleLike(ctx, id, clientID(ctx))
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	s.metrics.RecordLike(ctx, state.Liked)

	likes := state.Likes
	s.sseBroadcaster.Publish(sse.Event{Type: sse.EventLikeToggled, PromptID: id, Likes: &likes})
	writeJSON(w, http.StatusOK, state)
}

// handleCopy godoc
//
//	@Summary	Count a copy of the prompt content
//	@Tags		engagement
//	@Produce	json
//	@Param		id	path		string	true	"Prompt ID"
//	@Success	200	{object}	CopyResponse
//	@Failure	404	{string}	string
//	@Router		/api/prompts/{id}/copy [post]
func (s *Service) handleCopy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	copies, err := s.engagementStore.IncrementCopy(ctx, id)
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	s.metrics.RecordCopy(ctx)
	s.sseBroadcaster.Publish(sse.Event{Type: sse.EventCopied, PromptID: id, Copies: &copies})
	writeJSON(w, http.StatusOK, CopyResponse{Copies: copies})
}

// handleSetRating godoc
//
//	@Summary	Set the caller's rating
//	@Tags		engagement
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string			true	"Prompt ID"
//	@Param		rating	body		RatingRequest	true	"Rating 1-5"
//	@Success	200		{object}	RatingResponse
//	@Failure	400		{string}	string
//	@Failure	404		{string}	string
//	@Router		/api/prompts/{id}/rating [post]
func (s *Service) handleSetRating(w http.ResponseWriter, r *http.Request) {
	var req RatingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid rating", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	rating, err := s.engagementStore.SetRating(ctx, chi.URLParam(r, "id"), clientID(ctx), req.Rating)
	if err != nil {
		writeError(w, r, err, "Invalid rating")
		return
	}
	s.metrics.RecordRating(ctx)
	writeJSON(w, http.StatusOK, RatingResponse{Rating: rating})
}
