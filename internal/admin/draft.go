package admin

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fftourney/hub/internal/hub"
)

const DefaultDraftName = "New Tournament"

// NewDraft returns the template the admin panel starts a new tournament
// from. The ID is the slugged name followed by the creation time in
// milliseconds, so drafts created in a row never collide.
func NewDraft(name string, now time.Time) hub.Tournament {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultDraftName
	}
	return hub.Tournament{
		ID:          slug.Make(name) + "-" + strconv.FormatInt(now.UnixMilli(), 10),
		Name:        name,
		MatchType:   hub.MatchSolo,
		EntryFee:    0,
		DateTime:    "25 Oct, 08:00 PM",
		PrizePool:   "₹1000",
		Status:      hub.StatusOpen,
		Image:       "tournament.jpg",
		Description: "Enter match description here...",
		Rules:       []string{"No hacks", "Join 10 mins early"},
		TotalSlots:  hub.DefaultTotalSlots,
		JoinedSlots: 0,
		MinSlots:    hub.DefaultMinSlots,
	}
}

// Normalize fixes the casing of match types and statuses typed by hand
// ("squad" → "Squad") and returns warnings for everything it cannot fix.
// The input slice is not modified.
func Normalize(tournaments []hub.Tournament) ([]hub.Tournament, []string) {
	out := slices.Clone(tournaments)
	if out == nil {
		out = []hub.Tournament{}
	}

	title := cases.Title(language.English)
	var warnings []string
	seen := make(map[string]int, len(out))
	for i := range out {
		t := &out[i]
		label := fmt.Sprintf("tournament %d", i+1)
		if t.ID != "" {
			label += " (" + t.ID + ")"
		}

		t.MatchType = hub.MatchType(title.String(strings.TrimSpace(string(t.MatchType))))
		t.Status = hub.Status(title.String(strings.TrimSpace(string(t.Status))))

		if t.ID == "" {
			warnings = append(warnings, label+": empty id")
		} else if first, dup := seen[t.ID]; dup {
			warnings = append(warnings, fmt.Sprintf("%s: duplicate id, first used by tournament %d", label, first+1))
		} else {
			seen[t.ID] = i
		}
		if !t.MatchType.Valid() {
			warnings = append(warnings, fmt.Sprintf("%s: unknown match type %q", label, t.MatchType))
		}
		if !t.Status.Valid() {
			warnings = append(warnings, fmt.Sprintf("%s: unknown status %q", label, t.Status))
		}
		if t.EntryFee < 0 {
			warnings = append(warnings, fmt.Sprintf("%s: negative entry fee", label))
		}
	}
	return out, warnings
}
