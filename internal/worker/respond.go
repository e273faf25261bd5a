package worker

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptverse/pkg/models"
)

// Plain-text error bodies.
const (
	msgNotFound     = "Prompt not found"
	msgUnauthorized = "Unauthorized"
	msgServerError  = "Server error"
	msgBadBody      = "Invalid request body"
)

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// writeError maps a domain error to a status and a plain-text body.
// badRequest is the message used for ErrInvalidArgument.
func writeError(w http.ResponseWriter, r *http.Request, err error, badRequest string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, msgNotFound, http.StatusNotFound)
	case errors.Is(err, models.ErrInvalidArgument):
		http.Error(w, badRequest, http.StatusBadRequest)
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, msgUnauthorized, http.StatusUnauthorized)
	default:
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("clientId", clientID(r.Context())).
			Msg("Request failed")
		http.Error(w, msgServerError, http.StatusInternalServerError)
	}
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v unchanged.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// queryInt parses a query parameter, returning def when absent or malformed.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
