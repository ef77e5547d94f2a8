package catalog

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/fftourney/hub/internal/hub"
)

// UnmarshalJSON decodes a published document field by field. Only a body
// that is not a JSON object is an error; a field of the wrong type is
// treated as missing and a tournament record that is not an object is
// skipped, so one bad record never costs the rest of the document.
func (d *RawDocument) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*d = RawDocument{
		Banners:       stringList(fields["banners"]),
		Rules:         stringList(fields["rules"]),
		UPIID:         looseString(fields["upiId"]),
		AdminWhatsApp: looseString(fields["adminWhatsApp"]),
	}

	var records []json.RawMessage
	if err := json.Unmarshal(fields["tournaments"], &records); err != nil {
		return nil
	}
	d.Tournaments = make([]RawTournament, 0, len(records))
	for _, rec := range records {
		var t RawTournament
		if err := json.Unmarshal(rec, &t); err != nil {
			continue
		}
		d.Tournaments = append(d.Tournaments, t)
	}
	return nil
}

// UnmarshalJSON accepts numbers written as strings, whole numbers written
// as floats and numeric IDs. Values that cannot be coerced are left zero
// so the resolver defaults apply to them.
func (t *RawTournament) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*t = RawTournament{
		ID:          looseString(fields["id"]),
		Name:        looseString(fields["name"]),
		MatchType:   hub.MatchType(looseString(fields["matchType"])),
		EntryFee:    looseFloat(fields["entryFee"]),
		DateTime:    looseString(fields["dateTime"]),
		PrizePool:   looseString(fields["prizePool"]),
		Status:      hub.Status(looseString(fields["status"])),
		Image:       looseString(fields["image"]),
		Description: looseString(fields["description"]),
		Rules:       stringList(fields["rules"]),
		TotalSlots:  looseInt(fields["totalSlots"]),
		JoinedSlots: looseInt(fields["joinedSlots"]),
		MinSlots:    looseInt(fields["minSlots"]),
	}
	return nil
}

// looseString returns a JSON string as is and a JSON number in its
// literal form. Anything else is "".
func looseString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var n json.Number
	if json.Unmarshal(raw, &n) == nil {
		return n.String()
	}
	return ""
}

func looseFloat(raw json.RawMessage) float64 {
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return 0
}

func looseInt(raw json.RawMessage) int {
	f := looseFloat(raw)
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0
	}
	return int(f)
}

// stringList keeps the string entries of a JSON array. It returns nil when
// raw is missing or not an array, and an empty non-nil list for [].
func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if json.Unmarshal(item, &s) == nil {
			out = append(out, s)
		}
	}
	return out
}
