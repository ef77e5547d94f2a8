package server

import (
	"context"
	"net/http"

	"github.com/fftourney/hub/internal/admin"
)

type ctxKey int

const ctxKeyAdmin ctxKey = iota

const adminCookieName = "admin_session"

// adminFromRequest resolves the admin_session cookie.
func adminFromRequest(r *http.Request, sessions admin.SessionStore) (admin.Session, error) {
	cookie, err := r.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return admin.Session{}, admin.ErrNoSession
	}
	return sessions.Lookup(r.Context(), cookie.Value)
}

func adminAuthMiddleware(sessions admin.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := adminFromRequest(r, sessions)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminFrom(r *http.Request) admin.Session {
	return r.Context().Value(ctxKeyAdmin).(admin.Session)
}
