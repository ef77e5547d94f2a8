// Package session owns the hub's runtime state: the resolved catalog, the
// user's profile and join history, and the loading/ready lifecycle.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/fftourney/hub/internal/catalog"
	"github.com/fftourney/hub/internal/deeplink"
	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/profile"
)

var (
	ErrNotReady           = errors.New("catalog is still loading")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrNoProfile          = errors.New("profile required")
	ErrNotOpen            = errors.New("tournament is not open for registration")
)

type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
)

// Loader produces the raw tournament document and the tier it came from.
type Loader interface {
	Load(ctx context.Context) (*catalog.RawDocument, catalog.Origin, error)
}

// Store is the durable home of the profile and the join history.
type Store interface {
	Profile(ctx context.Context) (hub.UserProfile, error)
	SaveProfile(ctx context.Context, p hub.UserProfile) error
	History(ctx context.Context) ([]hub.JoinedTournament, error)
	SaveHistory(ctx context.Context, h []hub.JoinedTournament) error
	Wipe(ctx context.Context) error
}

// Snapshot summarizes the controller for status endpoints.
type Snapshot struct {
	State        State        `json:"state"`
	Source       catalog.Tier `json:"source,omitempty"`
	LoadedAt     *time.Time   `json:"loadedAt,omitempty"`
	HasProfile   bool         `json:"hasProfile"`
	HistoryCount int          `json:"historyCount"`
}

// Registration is the payment and confirmation step for one tournament.
type Registration struct {
	Tournament hub.Tournament `json:"tournament"`
	Links      deeplink.Links `json:"links"`
}

type Controller struct {
	loader Loader
	store  Store
	links  deeplink.Builder
	logger *slog.Logger
	events *Broker
	now    func() time.Time

	mu       sync.RWMutex
	state    State
	catalog  catalog.Catalog
	origin   catalog.Origin
	loadedAt time.Time
	profile  *hub.UserProfile
	history  []hub.JoinedTournament
}

func NewController(loader Loader, store Store, links deeplink.Builder, logger *slog.Logger) *Controller {
	return &Controller{
		loader:  loader,
		store:   store,
		links:   links,
		logger:  logger,
		events:  NewBroker(),
		now:     time.Now,
		state:   StateLoading,
		history: []hub.JoinedTournament{},
	}
}

// Initialize reads local data, then loads the catalog from the first tier
// that answers, or from the built-in fallback. It always ends in StateReady.
func (c *Controller) Initialize(ctx context.Context) {
	c.loadLocal(ctx)
	c.sync(ctx)
}

// Refresh reloads the catalog without going back to StateLoading. When
// every tier fails the current catalog is kept and its origin returned.
func (c *Controller) Refresh(ctx context.Context) catalog.Origin {
	return c.sync(ctx)
}

func (c *Controller) loadLocal(ctx context.Context) {
	var saved *hub.UserProfile
	p, err := c.store.Profile(ctx)
	switch {
	case err == nil:
		saved = &p
	case errors.Is(err, profile.ErrNotFound):
	default:
		c.logger.Warn("ignoring stored profile", "error", err)
	}

	h, err := c.store.History(ctx)
	if err != nil {
		c.logger.Warn("ignoring stored history", "error", err)
		h = []hub.JoinedTournament{}
	}

	c.mu.Lock()
	c.profile = saved
	c.history = h
	c.mu.Unlock()
}

func (c *Controller) sync(ctx context.Context) catalog.Origin {
	raw, origin, err := c.loader.Load(ctx)

	var cat catalog.Catalog
	if err != nil {
		c.mu.RLock()
		ready, current := c.state == StateReady, c.origin
		c.mu.RUnlock()
		if ready {
			c.logger.Warn("refresh failed, keeping current catalog", "source", current.Tier, "error", err)
			return current
		}

		c.logger.Warn("all tournament sources failed, using built-in catalog", "error", err)
		cat = catalog.Fallback()
		origin = catalog.Origin{Tier: catalog.TierOffline}
	} else {
		cat = catalog.Resolve(raw, origin)
	}

	c.mu.Lock()
	wasLoading := c.state == StateLoading
	c.catalog = cat
	c.origin = origin
	c.loadedAt = c.now()
	c.state = StateReady
	c.mu.Unlock()

	c.logger.Info("catalog ready", "source", origin.Tier, "tournaments", len(cat.Tournaments))
	if wasLoading {
		c.events.Publish(Event{Type: EventState})
	}
	c.events.Publish(Event{Type: EventCatalog})
	return origin
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Snapshot{
		State:        c.state,
		HasProfile:   c.profile != nil,
		HistoryCount: len(c.history),
	}
	if c.state == StateReady {
		loaded := c.loadedAt
		s.Source = c.origin.Tier
		s.LoadedAt = &loaded
	}
	return s
}

// Catalog returns the resolved catalog, or ErrNotReady while loading.
// The returned value is shared and must not be modified.
func (c *Controller) Catalog() (catalog.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateReady {
		return catalog.Catalog{}, ErrNotReady
	}
	return c.catalog, nil
}

func (c *Controller) Tournament(id string) (hub.Tournament, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tournamentLocked(id)
}

func (c *Controller) tournamentLocked(id string) (hub.Tournament, error) {
	if c.state != StateReady {
		return hub.Tournament{}, ErrNotReady
	}
	t, ok := c.catalog.Tournament(id)
	if !ok {
		return hub.Tournament{}, fmt.Errorf("%w: %s", ErrTournamentNotFound, id)
	}
	return t, nil
}

// Profile returns the current profile; ok is false before onboarding.
func (c *Controller) Profile() (hub.UserProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.profile == nil {
		return hub.UserProfile{}, false
	}
	return *c.profile, true
}

// History returns a copy of the join history in insertion order.
func (c *Controller) History() []hub.JoinedTournament {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.history)
}

// UpdateProfile validates p, replaces the current profile and persists it.
func (c *Controller) UpdateProfile(ctx context.Context, p hub.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if err := c.store.SaveProfile(ctx, p); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("saving profile: %w", err)
	}
	c.profile = &p
	c.mu.Unlock()

	c.events.Publish(Event{Type: EventProfile})
	return nil
}

// RegisterJoin records a join for the tournament unless one is already
// recorded; created reports whether a new entry was appended. The
// tournament's joined slot count is left untouched.
func (c *Controller) RegisterJoin(ctx context.Context, tournamentID string) (entry hub.JoinedTournament, created bool, err error) {
	c.mu.Lock()
	defer func() {
		c.mu.Unlock()
		if created {
			c.events.Publish(Event{Type: EventHistory})
		}
	}()

	t, err := c.tournamentLocked(tournamentID)
	if err != nil {
		return hub.JoinedTournament{}, false, err
	}
	if i := slices.IndexFunc(c.history, func(j hub.JoinedTournament) bool { return j.ID == t.ID }); i >= 0 {
		return c.history[i], false, nil
	}

	entry = hub.JoinedTournament{
		ID:       t.ID,
		Name:     t.Name,
		DateTime: t.DateTime,
		EntryFee: t.EntryFee,
		JoinedAt: c.now().UTC(),
	}
	next := append(slices.Clone(c.history), entry)
	if err := c.store.SaveHistory(ctx, next); err != nil {
		return hub.JoinedTournament{}, false, fmt.Errorf("saving history: %w", err)
	}
	c.history = next
	return entry, true, nil
}

// Registration returns the payment and confirmation links for an open
// tournament. A saved profile is required.
func (c *Controller) Registration(tournamentID string) (Registration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, err := c.tournamentLocked(tournamentID)
	if err != nil {
		return Registration{}, err
	}
	if c.profile == nil {
		return Registration{}, ErrNoProfile
	}
	if t.Status != hub.StatusOpen {
		return Registration{}, fmt.Errorf("%w: %s is %s", ErrNotOpen, t.ID, t.Status)
	}
	return Registration{
		Tournament: t,
		Links:      c.links.Build(c.catalog.Config, t, *c.profile),
	}, nil
}

// AdminSync renders an edited config and tournament list as the formatted
// JSON document an admin redeploys by hand. Nothing is stored or sent.
func (c *Controller) AdminSync(cfg hub.AppConfig, tournaments []hub.Tournament) ([]byte, error) {
	return catalog.Export(cfg, tournaments)
}

// Reset wipes the stored profile and history.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if err := c.store.Wipe(ctx); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("wiping local data: %w", err)
	}
	c.profile = nil
	c.history = []hub.JoinedTournament{}
	c.mu.Unlock()

	c.events.Publish(Event{Type: EventProfile})
	c.events.Publish(Event{Type: EventHistory})
	return nil
}

// Subscribe returns a channel of change events; release it with Unsubscribe.
func (c *Controller) Subscribe() chan Event { return c.events.Subscribe() }

func (c *Controller) Unsubscribe(ch chan Event) { c.events.Unsubscribe(ch) }
