package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fftourney/hub/internal/session"
)

func handleEvents(sess *session.Controller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		ch := sess.Subscribe()
		defer sess.Unsubscribe(ch)

		// The current state goes first so clients never miss the ready transition.
		snap, _ := json.Marshal(sess.Snapshot())
		fmt.Fprintf(w, "event: state\ndata: %s\n\n", snap)
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case ev := <-ch:
				data, _ := json.Marshal(sess.Snapshot())
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
				flusher.Flush()
			case <-ping.C:
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
