package worker

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptverse/pkg/models"
)

// AdminStatus reports whether the caller holds an admin grant.
type AdminStatus struct {
	Unlocked bool `json:"unlocked"`
}

// UnlockRequest carries a plaintext admin token.
type UnlockRequest struct {
	Token string `json:"token"`
}

// handleAdminStatus godoc
//
//	@Summary	Admin grant of the calling client
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	AdminStatus
//	@Router		/api/admin/status [get]
func (s *Service) handleAdminStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	unlocked, err := s.adminStore.IsUnlocked(ctx, clientID(ctx))
	if err != nil {
		writeError(w, r, err, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, AdminStatus{Unlocked: unlocked})
}

// handleAdminUnlock godoc
//
//	@Summary		Unlock admin features for the calling client
//	@Description	Attempts are not rate limited and grants do not expire
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			token	body		UnlockRequest	true	"Token"
//	@Success		200		{object}	AdminStatus
//	@Failure		400		{string}	string
//	@Failure		401		{string}	string
//	@Router			/api/admin/unlock [post]
func (s *Service) handleAdminUnlock(w http.ResponseWriter, r *http.Request) {
	var req UnlockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid token", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	client := clientID(ctx)
	err := s.adminStore.Unlock(ctx, client, req.Token)
	if err == nil {
		s.metrics.RecordUnlock(ctx, true)
	}
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			s.metrics.RecordUnlock(ctx, false)
			log.Warn().Str("clientId", client).Str("remote", r.RemoteAddr).Msg("Admin unlock rejected")
		}
		writeError(w, r, err, "Invalid token")
		return
	}

	log.Info().Str("clientId", client).Msg("Admin unlocked")
	writeJSON(w, http.StatusOK, AdminStatus{Unlocked: true})
}
