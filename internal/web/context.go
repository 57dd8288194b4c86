package web

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/PromptCompare/internal/logging"
)

type ctxKey int

const sessionKey ctxKey = iota

// withSession resolves the browser's comparison session from its cookie,
// creating one when needed, and stores it in the request context. The cookie
// is re-issued on every request so its lifetime slides with activity.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
			id = c.Value
		}

		sid, entry, created := s.store.Acquire(id)
		if created {
			logging.FromContext(r.Context()).Debug("session created", "session_id", sid)
		}
		http.SetCookie(w, &http.Cookie{
			Name:     s.cfg.Session.CookieName,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(s.cfg.Session.IdleTimeout / time.Second),
			HttpOnly: true,
			Secure:   s.cfg.Session.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})

		ctx := logging.ContextWithSessionID(r.Context(), sid)
		ctx = context.WithValue(ctx, sessionKey, entry)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFrom returns the entry stored by withSession.
func sessionFrom(ctx context.Context) *sessionEntry {
	e, _ := ctx.Value(sessionKey).(*sessionEntry)
	return e
}
