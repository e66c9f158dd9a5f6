package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/GregMSThompson/gwamegi-riders/pkg/logger"
)

const (
	SessionCookie = "riders_session"

	sessionKey contextKey = "session_id"
)

// Session gives every visitor a stable anonymous id so each browser gets
// its own ask interaction. A missing or malformed cookie is replaced.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil {
			if parsed, err := uuid.Parse(c.Value); err == nil {
				id = parsed.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https",
				SameSite: http.SameSiteLaxMode,
			})
		}

		_, ctx := logger.With(r.Context(), "session_id", id)
		ctx = WithSessionID(ctx, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionKey, id)
}
