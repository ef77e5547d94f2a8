package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/session"
)

// TournamentResponse is a tournament plus the fields the detail view shows.
type TournamentResponse struct {
	hub.Tournament
	FillPercent float64 `json:"fillPercent"`
	Joined      bool    `json:"joined"`
}

func handleState(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sess.Snapshot())
	}
}

func handleConfig(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := sess.Catalog()
		if err != nil {
			writeSessionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat.Config)
	}
}

func handleListTournaments(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cat, err := sess.Catalog()
		if err != nil {
			writeSessionError(w, err)
			return
		}

		status := r.URL.Query().Get("status")
		matchType := r.URL.Query().Get("matchType")

		out := make([]hub.Tournament, 0, len(cat.Tournaments))
		for _, t := range cat.Tournaments {
			if status != "" && !strings.EqualFold(string(t.Status), status) {
				continue
			}
			if matchType != "" && !strings.EqualFold(string(t.MatchType), matchType) {
				continue
			}
			out = append(out, t)
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleGetTournament(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := sess.Tournament(chi.URLParam(r, "id"))
		if err != nil {
			writeSessionError(w, err)
			return
		}

		joined := false
		for _, j := range sess.History() {
			if j.ID == t.ID {
				joined = true
				break
			}
		}
		writeJSON(w, http.StatusOK, TournamentResponse{
			Tournament:  t,
			FillPercent: t.FillPercent(),
			Joined:      joined,
		})
	}
}
