package catalog

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestDecodeKeepsGoodRecords(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []RawTournament
	}{
		{
			name: "string fee",
			doc:  `{"tournaments":[{"id":"t1","name":"Good"},{"id":"t2","entryFee":"50"}]}`,
			want: []RawTournament{{ID: "t1", Name: "Good"}, {ID: "t2", EntryFee: 50}},
		},
		{
			name: "float slot count",
			doc:  `{"tournaments":[{"id":"t1","totalSlots":48.0,"joinedSlots":"12"}]}`,
			want: []RawTournament{{ID: "t1", TotalSlots: 48, JoinedSlots: 12}},
		},
		{
			name: "numeric id",
			doc:  `{"tournaments":[{"id":1,"name":"One"}]}`,
			want: []RawTournament{{ID: "1", Name: "One"}},
		},
		{
			name: "unusable values fall back to zero",
			doc:  `{"tournaments":[{"id":"t1","entryFee":"free","minSlots":true,"rules":"none"}]}`,
			want: []RawTournament{{ID: "t1"}},
		},
		{
			name: "non-object record skipped",
			doc:  `{"tournaments":["junk",{"id":"t1"},42]}`,
			want: []RawTournament{{ID: "t1"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := decode(t, tt.doc)
			if !reflect.DeepEqual(raw.Tournaments, tt.want) {
				t.Errorf("tournaments = %+v, want %+v", raw.Tournaments, tt.want)
			}
		})
	}
}

func TestDecodeMixedDocumentResolves(t *testing.T) {
	raw := decode(t, `{
		"upiId": 12345,
		"banners": ["b.jpg", 7],
		"tournaments": [
			{"id": "t1", "name": "Good", "totalSlots": 0},
			{"id": "t2", "entryFee": "50", "totalSlots": "100", "rules": ["own", 3]}
		]
	}`)

	c := Resolve(raw, fallback)
	if len(c.Tournaments) != 2 {
		t.Fatalf("tournaments = %d, want 2", len(c.Tournaments))
	}
	if got := c.Tournaments[0]; got.ID != "t1" || got.TotalSlots != 48 || got.MinSlots != 10 {
		t.Errorf("t1 = %+v, want defaults applied", got)
	}
	if got := c.Tournaments[1]; got.EntryFee != 50 || got.TotalSlots != 100 || !reflect.DeepEqual(got.Rules, []string{"own"}) {
		t.Errorf("t2 = %+v", got)
	}
	if c.Config.UPIID != "12345" {
		t.Errorf("upiId = %q, want 12345", c.Config.UPIID)
	}
	if want := []string{fallback.Base + "b.jpg"}; !reflect.DeepEqual(c.Config.Banners, want) {
		t.Errorf("banners = %v, want %v", c.Config.Banners, want)
	}
}

func TestDecodeRejectsNonObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"tournaments"`, `42`} {
		var raw RawDocument
		if err := json.Unmarshal([]byte(doc), &raw); err == nil {
			t.Errorf("decoding %s: expected error", doc)
		}
	}
}
