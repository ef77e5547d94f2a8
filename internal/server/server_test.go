package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fftourney/hub/internal/admin"
	"github.com/fftourney/hub/internal/catalog"
	"github.com/fftourney/hub/internal/database"
	"github.com/fftourney/hub/internal/deeplink"
	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/migrations"
	"github.com/fftourney/hub/internal/profile"
	"github.com/fftourney/hub/internal/session"
	"github.com/fftourney/hub/internal/source"
)

const testPasscode = "letmein"

type stubLoader struct {
	doc *catalog.RawDocument
}

func (s stubLoader) Load(context.Context) (*catalog.RawDocument, catalog.Origin, error) {
	if s.doc == nil {
		return nil, catalog.Origin{Tier: catalog.TierOffline}, source.ErrNoSource
	}
	return s.doc, catalog.Origin{Tier: catalog.TierPrimary, URL: "file:///tournaments.json"}, nil
}

func testDoc() *catalog.RawDocument {
	return &catalog.RawDocument{
		UPIID:         "admin@okicici",
		AdminWhatsApp: "919800000000",
		Tournaments: []catalog.RawTournament{
			{ID: "t1", Name: "Evening Solo", MatchType: hub.MatchSolo, EntryFee: 20, Status: hub.StatusOpen, TotalSlots: 48, JoinedSlots: 12},
			{ID: "t2", Name: "Squad Finals", MatchType: hub.MatchSquad, EntryFee: 80, Status: hub.StatusFull},
			{ID: "t3", Name: "Duo Night", MatchType: hub.MatchDuo, EntryFee: 40, Status: hub.StatusOpen},
		},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupServer returns the full router and its controller. The controller
// is not initialized; call Initialize to leave the loading state.
func setupServer(t *testing.T, doc *catalog.RawDocument, spaDir string) (http.Handler, *session.Controller) {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	auth, err := admin.NewAuthenticator(testPasscode)
	if err != nil {
		t.Fatalf("authenticator: %v", err)
	}

	logger := discardLogger()
	ctrl := session.NewController(stubLoader{doc: doc}, profile.NewStore(db), deeplink.Builder{}, logger)
	srv := New("", logger, Deps{
		Session:       ctrl,
		Auth:          auth,
		AdminSessions: admin.NewSQLSessions(db, time.Hour),
		SPADir:        spaDir,
	}, nil)
	return srv.Handler(), ctrl
}

func readyServer(t *testing.T) (http.Handler, *session.Controller) {
	t.Helper()
	h, ctrl := setupServer(t, testDoc(), "")
	ctrl.Initialize(context.Background())
	return h, ctrl
}

func do(t *testing.T, h http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding body: %v", err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response: %v (body %q)", err, w.Body.String())
	}
	return v
}

func validProfile() hub.UserProfile {
	return hub.UserProfile{
		FullName: "Arjun Rao",
		IGN:      "ShadowFox",
		UID:      "123456789",
		Level:    "62",
		UPIID:    "arjun@okaxis",
	}
}
