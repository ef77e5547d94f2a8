package hub

import (
	"errors"
	"testing"
)

func TestProfileValidate(t *testing.T) {
	full := UserProfile{
		FullName: "Pawan Kumar",
		IGN:      "HEADSHOT_PRO",
		UID:      "123456789",
		Level:    "62",
		UPIID:    "pawan@okaxis",
	}

	tests := []struct {
		name       string
		profile    UserProfile
		wantFields []string
	}{
		{name: "complete without device", profile: full},
		{name: "empty", profile: UserProfile{}, wantFields: []string{"fullName", "ign", "uid", "level", "upiId"}},
		{
			name: "blank ign",
			profile: func() UserProfile {
				p := full
				p.IGN = "   "
				return p
			}(),
			wantFields: []string{"ign"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Errorf("fields = %v, want %v", verr.Fields, tt.wantFields)
			}
			for _, f := range tt.wantFields {
				if verr.Fields[f] != "Required" {
					t.Errorf("field %q = %q, want Required", f, verr.Fields[f])
				}
			}
		})
	}
}

func TestFillPercent(t *testing.T) {
	tests := []struct {
		joined, total int
		want          float64
	}{
		{10, 48, 10.0 / 48 * 100},
		{60, 48, 100},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := Tournament{JoinedSlots: tt.joined, TotalSlots: tt.total}.FillPercent()
		if got != tt.want {
			t.Errorf("FillPercent(%d/%d) = %v, want %v", tt.joined, tt.total, got, tt.want)
		}
	}
}

func TestDefaultsAreCopies(t *testing.T) {
	a := DefaultRules()
	a[0] = "changed"
	if DefaultRules()[0] == "changed" {
		t.Fatal("DefaultRules shares its backing array")
	}
	if len(DefaultConfig().Banners) != 2 {
		t.Fatalf("expected 2 default banners")
	}
}
