// Package hub defines the core domain types of the tournament hub.
// It has zero external dependencies; everything here is pure Go.
package hub

import "time"

type MatchType string

const (
	MatchSolo  MatchType = "Solo"
	MatchDuo   MatchType = "Duo"
	MatchSquad MatchType = "Squad"
)

// Valid reports whether m is one of the known match types.
func (m MatchType) Valid() bool {
	switch m {
	case MatchSolo, MatchDuo, MatchSquad:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen      Status = "Open"
	StatusFull      Status = "Full"
	StatusCompleted Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusFull, StatusCompleted:
		return true
	}
	return false
}

// UserProfile is the single player profile of an installation.
type UserProfile struct {
	FullName string `json:"fullName"`
	IGN      string `json:"ign"`
	UID      string `json:"uid"`
	Level    string `json:"level"`
	Device   string `json:"device,omitempty"`
	UPIID    string `json:"upiId"`
}

// Tournament is a resolved tournament record. JoinedSlots is display data
// only: joining never increments it.
type Tournament struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	MatchType   MatchType `json:"matchType"`
	EntryFee    float64   `json:"entryFee"`
	DateTime    string    `json:"dateTime"`
	PrizePool   string    `json:"prizePool"`
	Status      Status    `json:"status"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Rules       []string  `json:"rules"`
	TotalSlots  int       `json:"totalSlots"`
	JoinedSlots int       `json:"joinedSlots"`
	MinSlots    int       `json:"minSlots"`
}

// FillPercent is the share of slots shown as taken, capped at 100.
func (t Tournament) FillPercent() float64 {
	if t.TotalSlots <= 0 {
		return 0
	}
	return min(100, float64(t.JoinedSlots)/float64(t.TotalSlots)*100)
}

// JoinedTournament is one entry of the join history.
type JoinedTournament struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	DateTime string    `json:"dateTime"`
	EntryFee float64   `json:"entryFee"`
	JoinedAt time.Time `json:"joinedAt"`
}

// AppConfig holds the admin-managed settings delivered with the tournament document.
type AppConfig struct {
	Banners       []string `json:"banners"`
	Rules         []string `json:"rules"`
	UPIID         string   `json:"upiId"`
	AdminWhatsApp string   `json:"adminWhatsApp"`
}
