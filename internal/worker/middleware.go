package worker

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ClientCookieName carries the anonymous per-browser identifier.
const ClientCookieName = "pv_client_id"

// clientCookieMaxAge is five years in seconds.
const clientCookieMaxAge = 5 * 365 * 24 * 60 * 60

type clientIDKey struct{}

// clientIdentity reads the client cookie, issuing a fresh identifier when it
// is missing or malformed, and stores the identifier in the request context.
func (s *Service) clientIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(ClientCookieName); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   clientCookieMaxAge,
				HttpOnly: true,
				Secure:   s.config.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(withClientID(r.Context(), id)))
	})
}

func withClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey{}, id)
}

// clientID returns the identifier attached by clientIdentity.
func clientID(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey{}).(string)
	return id
}
