package catalog

import "github.com/fftourney/hub/internal/hub"

const fallbackImage = "https://images.unsplash.com/photo-1542751371-adc38448a05e?auto=format&fit=crop&q=80&w=800"

// Fallback returns the offline catalog used when no source could be loaded:
// a single open sample tournament and the built-in config.
func Fallback() Catalog {
	return Catalog{
		Tournaments: []hub.Tournament{{
			ID:          "mock-1",
			Name:        "Sample Tournament (Local)",
			MatchType:   hub.MatchSolo,
			EntryFee:    50,
			DateTime:    "Coming Soon, 00:00 AM",
			PrizePool:   "₹1000",
			Status:      hub.StatusOpen,
			Image:       fallbackImage,
			Description: "This is fallback data because tournaments.json could not be loaded.",
			Rules:       hub.DefaultRules(),
			TotalSlots:  hub.DefaultTotalSlots,
			JoinedSlots: 10,
			MinSlots:    hub.DefaultMinSlots,
		}},
		Config: hub.DefaultConfig(),
	}
}
