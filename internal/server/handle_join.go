package server

import (
	"errors"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/fftourney/hub/internal/deeplink"
	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/session"
)

// JoinResponse is returned by POST /api/tournaments/{id}/join.
type JoinResponse struct {
	Entry   hub.JoinedTournament `json:"entry"`
	Created bool                 `json:"created"`
	Links   *deeplink.Links      `json:"links,omitempty"`
}

func handleRegistration(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg, err := sess.Registration(chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reg)
	}
}

// handleJoin is called when the player moves on to confirm over WhatsApp.
// Payment itself is self-reported; the join is recorded regardless. Only
// new joins need an open tournament; repeating a recorded join answers
// with the existing entry, without links once registration has closed.
func handleJoin(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var links *deeplink.Links
		reg, err := sess.Registration(id)
		switch {
		case err == nil:
			links = &reg.Links
		case alreadyJoined(sess, id) && (errors.Is(err, session.ErrNotOpen) || errors.Is(err, session.ErrNoProfile)):
		default:
			writeSessionError(w, err)
			return
		}

		entry, created, err := sess.RegisterJoin(r.Context(), id)
		if err != nil {
			writeSessionError(w, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, JoinResponse{Entry: entry, Created: created, Links: links})
	}
}

func alreadyJoined(sess *session.Controller, id string) bool {
	return slices.ContainsFunc(sess.History(), func(j hub.JoinedTournament) bool { return j.ID == id })
}
