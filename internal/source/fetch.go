// Package source fetches tournament documents from the primary and fallback tiers.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fftourney/hub/internal/catalog"
)

var (
	// ErrFetch wraps every fetch failure: transport errors, non-2xx
	// statuses and undecodable bodies alike.
	ErrFetch = errors.New("fetch failed")

	// ErrNoSource is returned by Loader.Load when neither tier produced a document.
	ErrNoSource = errors.New("no tournament source available")
)

// CacheBustParam is the query parameter carrying the request timestamp.
const CacheBustParam = "t"

// NewClient returns an HTTP client that additionally serves file:// URLs
// from root, so a relative primary source can point at the files the hub
// itself serves.
func NewClient(root string, timeout time.Duration) *http.Client {
	t := http.DefaultTransport.(*http.Transport).Clone()
	if root != "" {
		t.RegisterProtocol("file", http.NewFileTransport(http.Dir(root)))
	}
	return &http.Client{Transport: t, Timeout: timeout}
}

type Fetcher struct {
	client *http.Client
	now    func() time.Time
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, now: time.Now}
}

// Fetch downloads and decodes the document at rawURL. A cache-busting
// timestamp is appended so intermediaries never answer from cache.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*catalog.RawDocument, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing url %q: %w", ErrFetch, rawURL, err)
	}
	q := u.Query()
	q.Set(CacheBustParam, strconv.FormatInt(f.now().UnixMilli(), 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	var doc *catalog.RawDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding document: %w", ErrFetch, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrFetch)
	}
	return doc, nil
}
