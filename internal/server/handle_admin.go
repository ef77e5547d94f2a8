package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fftourney/hub/internal/admin"
	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/session"
)

// AdminLoginRequest is the request body for POST /api/admin/login.
type AdminLoginRequest struct {
	Passcode string `json:"passcode"`
}

// AdminMeResponse describes the current admin session.
type AdminMeResponse struct {
	Authenticated bool      `json:"authenticated"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// AdminDraft is the editable copy of the catalog in the admin panel.
type AdminDraft struct {
	Config      hub.AppConfig    `json:"config"`
	Tournaments []hub.Tournament `json:"tournaments"`
}

// AdminTemplateRequest is the request body for POST /api/admin/tournaments/template.
type AdminTemplateRequest struct {
	Name string `json:"name,omitempty"`
}

// ExportResponse carries the document to paste into tournaments.json.
type ExportResponse struct {
	JSON     string   `json:"json"`
	Warnings []string `json:"warnings"`
}

func handleAdminLogin(auth *admin.Authenticator, sessions admin.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminLoginRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := auth.Verify(req.Passcode); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid passcode")
			return
		}

		sess, err := sessions.Create(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    sess.ID,
			Path:     "/",
			Expires:  sess.ExpiresAt,
			MaxAge:   int(time.Until(sess.ExpiresAt) / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, AdminMeResponse{Authenticated: true, ExpiresAt: sess.ExpiresAt})
	}
}

func handleAdminLogout(logger *slog.Logger, sessions admin.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(adminCookieName)
		if err == nil && cookie.Value != "" {
			if err := sessions.Delete(r.Context(), cookie.Value); err != nil {
				logger.Error("deleting admin session", "admin_session", cookie.Value, "error", err)
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     adminCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func handleAdminMe(sessions admin.SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := adminFromRequest(r, sessions)
		if errors.Is(err, admin.ErrNoSession) {
			writeError(w, http.StatusUnauthorized, "not authenticated")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, AdminMeResponse{Authenticated: true, ExpiresAt: sess.ExpiresAt})
	}
}

// handleAdminDraft seeds the admin panel with the catalog as currently served.
func handleAdminDraft(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := sess.Catalog()
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, AdminDraft{Config: cat.Config, Tournaments: cat.Tournaments})
	}
}

func handleAdminTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminTemplateRequest
		if r.ContentLength != 0 {
			if err := readJSON(r, &req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}
		writeJSON(w, http.StatusCreated, admin.NewDraft(req.Name, time.Now()))
	}
}

// handleAdminExport renders the edited draft as a tournaments.json document.
// The admin copies it and redeploys by hand; nothing is written here.
func handleAdminExport(logger *slog.Logger, sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminDraft
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		tournaments, warnings := admin.Normalize(req.Tournaments)
		data, err := sess.AdminSync(req.Config, tournaments)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if warnings == nil {
			warnings = []string{}
		}
		logger.Info("catalog exported",
			"admin_session", adminFrom(r).ID,
			"tournaments", len(tournaments),
			"warnings", len(warnings),
		)
		writeJSON(w, http.StatusOK, ExportResponse{JSON: string(data), Warnings: warnings})
	}
}
