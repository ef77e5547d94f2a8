// Package catalog turns raw tournament documents into the resolved tournament
// list and app config, and supplies the offline fallback when no document loads.
package catalog

import "github.com/fftourney/hub/internal/hub"

// RawDocument is the tournament document as published. Every field is
// optional; see decode.go for how off-type values are read.
type RawDocument struct {
	Banners       []string        `json:"banners,omitempty"`
	Rules         []string        `json:"rules,omitempty"`
	UPIID         string          `json:"upiId,omitempty"`
	AdminWhatsApp string          `json:"adminWhatsApp,omitempty"`
	Tournaments   []RawTournament `json:"tournaments,omitempty"`
}

// RawTournament is a tournament before defaults are applied. A nil Rules
// means the document did not carry any; an empty list is kept as is.
type RawTournament struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	MatchType   hub.MatchType `json:"matchType"`
	EntryFee    float64       `json:"entryFee"`
	DateTime    string        `json:"dateTime"`
	PrizePool   string        `json:"prizePool"`
	Status      hub.Status    `json:"status"`
	Image       string        `json:"image"`
	Description string        `json:"description"`
	Rules       []string      `json:"rules"`
	TotalSlots  int           `json:"totalSlots"`
	JoinedSlots int           `json:"joinedSlots"`
	MinSlots    int           `json:"minSlots"`
}

// Tier names the source that produced a catalog.
type Tier string

const (
	TierPrimary  Tier = "primary"
	TierFallback Tier = "fallback"
	TierOffline  Tier = "offline"
)

// Origin describes where a raw document was loaded from. Base is the
// directory relative image paths are rewritten against; it is only used
// for the fallback tier.
type Origin struct {
	Tier Tier
	URL  string
	Base string
}

// Catalog is the resolved data set served to clients.
type Catalog struct {
	Tournaments []hub.Tournament
	Config      hub.AppConfig
}

// Tournament looks up a tournament by ID.
func (c Catalog) Tournament(id string) (hub.Tournament, bool) {
	for _, t := range c.Tournaments {
		if t.ID == id {
			return t, true
		}
	}
	return hub.Tournament{}, false
}
