package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// SessionStore issues and resolves admin sessions.
type SessionStore interface {
	Create(ctx context.Context) (Session, error)
	Lookup(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// SQLSessions keeps admin sessions in the local database.
type SQLSessions struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLSessions(db *sql.DB, ttl time.Duration) *SQLSessions {
	return &SQLSessions{db: db, ttl: ttl, now: time.Now}
}

func (s *SQLSessions) Create(ctx context.Context) (Session, error) {
	now := s.now().UTC()
	sess := Session{ID: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(s.ttl)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM admin_sessions WHERE expires_at <= ?`, formatTime(now)); err != nil {
		return Session{}, fmt.Errorf("pruning sessions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO admin_sessions (id, created_at, expires_at)
		VALUES (?, ?, ?)
	`, sess.ID, formatTime(sess.CreatedAt), formatTime(sess.ExpiresAt)); err != nil {
		return Session{}, fmt.Errorf("inserting session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("committing session: %w", err)
	}
	return sess, nil
}

func (s *SQLSessions) Lookup(ctx context.Context, id string) (Session, error) {
	var created, expires string
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at, expires_at FROM admin_sessions WHERE id = ?
	`, id).Scan(&created, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("querying session: %w", err)
	}

	sess := Session{ID: id}
	if sess.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Session{}, fmt.Errorf("parsing created_at: %w", err)
	}
	if sess.ExpiresAt, err = time.Parse(timeLayout, expires); err != nil {
		return Session{}, fmt.Errorf("parsing expires_at: %w", err)
	}
	if !s.now().Before(sess.ExpiresAt) {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

func (s *SQLSessions) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM admin_sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// timeLayout has fixed-width fractions so stored times sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

const redisKeyPrefix = "admin_session:"

// RedisSessions keeps admin sessions in Redis, letting key expiry enforce
// the TTL.
type RedisSessions struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisSessions(client *redis.Client, ttl time.Duration) *RedisSessions {
	return &RedisSessions{client: client, ttl: ttl, now: time.Now}
}

func (s *RedisSessions) Create(ctx context.Context) (Session, error) {
	now := s.now().UTC()
	sess := Session{ID: uuid.NewString(), CreatedAt: now, ExpiresAt: now.Add(s.ttl)}
	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, formatTime(now), s.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("storing session: %w", err)
	}
	return sess, nil
}

func (s *RedisSessions) Lookup(ctx context.Context, id string) (Session, error) {
	key := redisKeyPrefix + id
	created, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("reading session: %w", err)
	}
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return Session{}, fmt.Errorf("reading session ttl: %w", err)
	}

	expires, err := expiryFromTTL(s.now().UTC(), ttl, s.ttl)
	if err != nil {
		return Session{}, err
	}
	sess := Session{ID: id, ExpiresAt: expires}
	if sess.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return Session{}, fmt.Errorf("parsing session: %w", err)
	}
	return sess, nil
}

// expiryFromTTL turns a Redis TTL reply into an expiry time. Redis answers
// -2 when the key is gone and -1 when it has no expiry; the latter gets a
// full session lifetime.
func expiryFromTTL(now time.Time, ttl, lifetime time.Duration) (time.Time, error) {
	switch {
	case ttl == -2:
		return time.Time{}, ErrNoSession
	case ttl == -1:
		return now.Add(lifetime), nil
	case ttl <= 0:
		return time.Time{}, ErrNoSession
	}
	return now.Add(ttl), nil
}

func (s *RedisSessions) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
