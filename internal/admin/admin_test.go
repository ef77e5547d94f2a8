package admin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fftourney/hub/internal/database"
	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/migrations"
)

func TestAuthenticator(t *testing.T) {
	a, err := NewAuthenticator("letmein")
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	if err := a.Verify("letmein"); err != nil {
		t.Errorf("correct passcode rejected: %v", err)
	}
	for _, bad := range []string{"", "LETMEIN", "letmein "} {
		if err := a.Verify(bad); !errors.Is(err, ErrInvalidPasscode) {
			t.Errorf("Verify(%q) = %v, want ErrInvalidPasscode", bad, err)
		}
	}

	if _, err := NewAuthenticator(""); err == nil {
		t.Error("expected error for empty passcode")
	}
}

func setupSQLSessions(t *testing.T, ttl time.Duration) *SQLSessions {
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
	return NewSQLSessions(db, ttl)
}

func TestSQLSessions(t *testing.T) {
	ctx := context.Background()
	s := setupSQLSessions(t, time.Hour)

	sess, err := s.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" || !sess.ExpiresAt.After(sess.CreatedAt) {
		t.Fatalf("session = %+v", sess)
	}

	got, err := s.Lookup(ctx, sess.ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !got.ExpiresAt.Equal(sess.ExpiresAt) {
		t.Errorf("expires = %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}

	if err := s.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Lookup(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("lookup after delete = %v, want ErrNoSession", err)
	}
	if _, err := s.Lookup(ctx, "unknown"); !errors.Is(err, ErrNoSession) {
		t.Errorf("lookup unknown = %v, want ErrNoSession", err)
	}
}

func TestSQLSessionsExpire(t *testing.T) {
	ctx := context.Background()
	s := setupSQLSessions(t, time.Hour)
	start := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }

	sess, err := s.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	s.now = func() time.Time { return start.Add(59 * time.Minute) }
	if _, err := s.Lookup(ctx, sess.ID); err != nil {
		t.Errorf("lookup before expiry: %v", err)
	}

	s.now = func() time.Time { return start.Add(time.Hour) }
	if _, err := s.Lookup(ctx, sess.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("lookup at expiry = %v, want ErrNoSession", err)
	}

	// Creating a new session prunes the expired one.
	if _, err := s.Create(ctx); err != nil {
		t.Fatalf("second create: %v", err)
	}
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM admin_sessions`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("sessions = %d, want 1 after pruning", n)
	}
}

func TestRedisSessionsUnavailable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         "localhost:1",
		DialTimeout:  10 * time.Millisecond,
		ReadTimeout:  10 * time.Millisecond,
		WriteTimeout: 10 * time.Millisecond,
		MaxRetries:   0,
	})
	defer rdb.Close()
	s := NewRedisSessions(rdb, time.Hour)

	if _, err := s.Create(context.Background()); err == nil {
		t.Error("expected create to fail without redis")
	}
	_, err := s.Lookup(context.Background(), "abc")
	if err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("lookup err = %v, want a connection error", err)
	}
}

func TestExpiryFromTTL(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		ttl     time.Duration
		want    time.Time
		wantErr error
	}{
		{name: "remaining ttl", ttl: 30 * time.Minute, want: now.Add(30 * time.Minute)},
		{name: "no expiry set", ttl: -1, want: now.Add(time.Hour)},
		{name: "key gone", ttl: -2, wantErr: ErrNoSession},
		{name: "zero", ttl: 0, wantErr: ErrNoSession},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expiryFromTTL(now, tt.ttl, time.Hour)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expiry = %v, want %v", got, tt.want)
			}
			if tt.wantErr == nil && !got.After(now) {
				t.Errorf("expiry %v is not in the future", got)
			}
		})
	}
}

func TestNewDraft(t *testing.T) {
	now := time.UnixMilli(1760000000000)

	d := NewDraft("", now)
	if d.ID != "new-tournament-1760000000000" {
		t.Errorf("id = %q", d.ID)
	}
	if d.Name != DefaultDraftName || d.MatchType != hub.MatchSolo || d.Status != hub.StatusOpen {
		t.Errorf("draft = %+v", d)
	}
	if d.TotalSlots != 48 || d.JoinedSlots != 0 || d.MinSlots != 10 {
		t.Errorf("slots = %d/%d/%d, want 48/0/10", d.TotalSlots, d.JoinedSlots, d.MinSlots)
	}
	if len(d.Rules) != 2 {
		t.Errorf("rules = %v", d.Rules)
	}

	d = NewDraft("  Sunday Squad Cup 2 ", now)
	if d.ID != "sunday-squad-cup-2-1760000000000" {
		t.Errorf("id = %q", d.ID)
	}
	if d.Name != "Sunday Squad Cup 2" {
		t.Errorf("name = %q", d.Name)
	}
}

func TestNormalize(t *testing.T) {
	in := []hub.Tournament{
		{ID: "a", MatchType: "squad", Status: "OPEN", EntryFee: 10},
		{ID: "a", MatchType: "Duo", Status: "Full"},
		{ID: "", MatchType: "Trio", Status: "Closed", EntryFee: -5},
	}

	out, warnings := Normalize(in)

	if out[0].MatchType != hub.MatchSquad || out[0].Status != hub.StatusOpen {
		t.Errorf("normalized = %+v", out[0])
	}
	if in[0].MatchType != "squad" {
		t.Error("input was modified")
	}

	wantFragments := []string{
		"tournament 2 (a): duplicate id",
		"tournament 3: empty id",
		`unknown match type "Trio"`,
		`unknown status "Closed"`,
		"tournament 3: negative entry fee",
	}
	all := strings.Join(warnings, "\n")
	for _, frag := range wantFragments {
		if !strings.Contains(all, frag) {
			t.Errorf("warnings missing %q:\n%s", frag, all)
		}
	}
	if len(warnings) != len(wantFragments) {
		t.Errorf("warnings = %d, want %d:\n%s", len(warnings), len(wantFragments), all)
	}

	out, warnings = Normalize(nil)
	if out == nil || len(out) != 0 || len(warnings) != 0 {
		t.Errorf("Normalize(nil) = %v, %v", out, warnings)
	}
}
