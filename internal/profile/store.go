// Package profile persists the installation's user profile and join history
// as JSON text under fixed keys of the local key-value table.
package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fftourney/hub/internal/hub"
)

var (
	// ErrNotFound is returned when nothing is stored under a key.
	ErrNotFound = errors.New("not found")

	// ErrCorrupt is returned when the stored text is not valid JSON for the
	// expected shape.
	ErrCorrupt = errors.New("stored value is corrupt")
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Profile returns the saved profile, ErrNotFound when none was saved, or
// ErrCorrupt when the stored value cannot be decoded.
func (s *Store) Profile(ctx context.Context) (hub.UserProfile, error) {
	var p hub.UserProfile
	if err := s.get(ctx, hub.ProfileKey, &p); err != nil {
		return hub.UserProfile{}, err
	}
	return p, nil
}

// SaveProfile replaces the stored profile.
func (s *Store) SaveProfile(ctx context.Context, p hub.UserProfile) error {
	return s.put(ctx, hub.ProfileKey, p)
}

// History returns the join history in insertion order. A missing history is
// an empty list, not an error.
func (s *Store) History(ctx context.Context) ([]hub.JoinedTournament, error) {
	var h []hub.JoinedTournament
	err := s.get(ctx, hub.HistoryKey, &h)
	if errors.Is(err, ErrNotFound) {
		return []hub.JoinedTournament{}, nil
	}
	if err != nil {
		return nil, err
	}
	if h == nil {
		h = []hub.JoinedTournament{}
	}
	return h, nil
}

// SaveHistory replaces the stored history.
func (s *Store) SaveHistory(ctx context.Context, h []hub.JoinedTournament) error {
	if h == nil {
		h = []hub.JoinedTournament{}
	}
	return s.put(ctx, hub.HistoryKey, h)
}

// Wipe removes the profile and the history in one transaction.
func (s *Store) Wipe(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key IN (?, ?)`, hub.ProfileKey, hub.HistoryKey); err != nil {
		return fmt.Errorf("deleting local data: %w", err)
	}
	return tx.Commit()
}

func (s *Store) get(ctx context.Context, key string, v any) error {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorrupt, key, err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
