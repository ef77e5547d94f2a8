package hub

import (
	"sort"
	"strings"
)

// ValidationError maps form field names to messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

// Validate checks that every required profile field is filled in.
// Device is optional.
func (p UserProfile) Validate() error {
	fields := map[string]string{}
	required := []struct {
		name  string
		value string
	}{
		{"fullName", p.FullName},
		{"ign", p.IGN},
		{"uid", p.UID},
		{"level", p.Level},
		{"upiId", p.UPIID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			fields[f.name] = "Required"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
