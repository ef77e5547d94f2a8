package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/fftourney/hub/internal/catalog"
)

// Loader tries the primary source first and the fallback source only when
// the primary failed. The attempts are sequential and never retried.
type Loader struct {
	fetcher  *Fetcher
	primary  string
	fallback string
	logger   *slog.Logger
}

// NewLoader resolves primaryRef (usually relative, e.g. "./tournaments.json")
// against appRoot. fallbackURL must be absolute.
func NewLoader(fetcher *Fetcher, appRoot, primaryRef, fallbackURL string, logger *slog.Logger) (*Loader, error) {
	root, err := url.Parse(appRoot)
	if err != nil {
		return nil, fmt.Errorf("parsing app root %q: %w", appRoot, err)
	}
	ref, err := url.Parse(primaryRef)
	if err != nil {
		return nil, fmt.Errorf("parsing primary source %q: %w", primaryRef, err)
	}
	fb, err := url.Parse(fallbackURL)
	if err != nil {
		return nil, fmt.Errorf("parsing fallback source %q: %w", fallbackURL, err)
	}
	if !fb.IsAbs() {
		return nil, fmt.Errorf("fallback source %q is not absolute", fallbackURL)
	}

	return &Loader{
		fetcher:  fetcher,
		primary:  root.ResolveReference(ref).String(),
		fallback: fallbackURL,
		logger:   logger,
	}, nil
}

// PrimaryURL is the primary source after resolution against the app root.
func (l *Loader) PrimaryURL() string { return l.primary }

// FallbackURL is the absolute fallback source.
func (l *Loader) FallbackURL() string { return l.fallback }

// Load returns the first document that could be fetched together with its
// origin, or ErrNoSource.
func (l *Loader) Load(ctx context.Context) (*catalog.RawDocument, catalog.Origin, error) {
	doc, err := l.fetcher.Fetch(ctx, l.primary)
	if err == nil {
		l.logger.Info("tournament document loaded", "tier", catalog.TierPrimary, "url", l.primary)
		return doc, catalog.Origin{Tier: catalog.TierPrimary, URL: l.primary}, nil
	}
	l.logger.Warn("primary source failed", "url", l.primary, "error", err)

	doc, err = l.fetcher.Fetch(ctx, l.fallback)
	if err == nil {
		l.logger.Info("tournament document loaded", "tier", catalog.TierFallback, "url", l.fallback)
		return doc, catalog.Origin{
			Tier: catalog.TierFallback,
			URL:  l.fallback,
			Base: BaseDir(l.fallback),
		}, nil
	}
	l.logger.Warn("fallback source failed", "url", l.fallback, "error", err)

	return nil, catalog.Origin{Tier: catalog.TierOffline}, ErrNoSource
}

// BaseDir returns rawURL up to and including its last slash.
func BaseDir(rawURL string) string {
	return rawURL[:strings.LastIndex(rawURL, "/")+1]
}
