package catalog

import (
	"slices"
	"strings"

	"github.com/fftourney/hub/internal/hub"
)

// Resolve normalizes a raw document loaded from origin. It does no I/O and
// never modifies raw.
//
// Slot counts of zero are treated the same as missing ones and receive the
// defaults (48 total, 0 joined, 10 minimum).
func Resolve(raw *RawDocument, origin Origin) Catalog {
	if raw == nil {
		raw = &RawDocument{}
	}

	banners := make([]string, 0, len(raw.Banners))
	for _, b := range raw.Banners {
		banners = append(banners, ResolvePath(b, origin))
	}
	if len(banners) == 0 {
		banners = hub.DefaultBanners()
	}

	tournaments := make([]hub.Tournament, 0, len(raw.Tournaments))
	for _, rt := range raw.Tournaments {
		tournaments = append(tournaments, resolveTournament(rt, raw.Rules, origin))
	}

	cfg := hub.AppConfig{
		Banners:       banners,
		Rules:         rulesOr(raw.Rules, hub.DefaultRules()),
		UPIID:         stringOr(raw.UPIID, hub.DefaultUPIID),
		AdminWhatsApp: stringOr(raw.AdminWhatsApp, hub.DefaultAdminWhatsApp),
	}

	return Catalog{Tournaments: tournaments, Config: cfg}
}

// ResolvePath rewrites a relative image reference so it resolves against the
// source that served the document. Absolute URLs and inline data pass through.
func ResolvePath(path string, origin Origin) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") || strings.HasPrefix(path, "data:") {
		return path
	}
	if origin.Tier != TierFallback {
		return path
	}
	return origin.Base + path
}

func resolveTournament(rt RawTournament, docRules []string, origin Origin) hub.Tournament {
	rules := rt.Rules
	if rules == nil {
		rules = rulesOr(docRules, hub.DefaultRules())
	}

	return hub.Tournament{
		ID:          rt.ID,
		Name:        rt.Name,
		MatchType:   rt.MatchType,
		EntryFee:    rt.EntryFee,
		DateTime:    rt.DateTime,
		PrizePool:   rt.PrizePool,
		Status:      rt.Status,
		Image:       ResolvePath(rt.Image, origin),
		Description: rt.Description,
		Rules:       slices.Clone(rules),
		TotalSlots:  intOr(rt.TotalSlots, hub.DefaultTotalSlots),
		JoinedSlots: rt.JoinedSlots,
		MinSlots:    intOr(rt.MinSlots, hub.DefaultMinSlots),
	}
}

func rulesOr(rules, def []string) []string {
	if rules == nil {
		return def
	}
	return slices.Clone(rules)
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func intOr(n, def int) int {
	if n == 0 {
		return def
	}
	return n
}
