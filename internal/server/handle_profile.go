package server

import (
	"net/http"

	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/session"
)

func handleGetProfile(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, ok := sess.Profile()
		if !ok {
			writeError(w, http.StatusNotFound, "profile not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleUpdateProfile(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p hub.UserProfile
		if err := readJSON(r, &p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := sess.UpdateProfile(r.Context(), p); err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func handleHistory(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sess.History())
	}
}

func handleResetLocalData(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := sess.Reset(r.Context()); err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
