package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fftourney/hub/internal/handler/health"
)

func failing(msg string) health.Checker {
	return health.CheckFunc(func(context.Context) error { return errors.New(msg) })
}

var healthy = health.CheckFunc(func(context.Context) error { return nil })

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantReport string
		wantChecks map[string]string
	}{
		{
			name:       "sqlite only",
			checks:     map[string]health.Checker{"sqlite": healthy},
			wantStatus: http.StatusOK,
			wantReport: "ok",
			wantChecks: map[string]string{"sqlite": "ok"},
		},
		{
			name: "all healthy",
			checks: map[string]health.Checker{
				"sqlite": healthy,
				"redis":  healthy,
			},
			wantStatus: http.StatusOK,
			wantReport: "ok",
			wantChecks: map[string]string{"sqlite": "ok", "redis": "ok"},
		},
		{
			name: "sqlite down",
			checks: map[string]health.Checker{
				"sqlite": failing("locked"),
				"redis":  healthy,
			},
			wantStatus: http.StatusServiceUnavailable,
			wantReport: "error",
			wantChecks: map[string]string{"sqlite": "error", "redis": "ok"},
		},
		{
			name: "redis down",
			checks: map[string]health.Checker{
				"sqlite": healthy,
				"redis":  failing("refused"),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantReport: "error",
			wantChecks: map[string]string{"sqlite": "ok", "redis": "error"},
		},
		{
			name:       "no checks",
			checks:     map[string]health.Checker{},
			wantStatus: http.StatusOK,
			wantReport: "ok",
			wantChecks: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var report health.Report
			if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if report.Status != tt.wantReport {
				t.Errorf("report status = %q, want %q", report.Status, tt.wantReport)
			}
			if len(report.Checks) != len(tt.wantChecks) {
				t.Errorf("checks = %v, want %v", report.Checks, tt.wantChecks)
			}
			for name, want := range tt.wantChecks {
				if got := report.Checks[name].Status; got != want {
					t.Errorf("%s status = %q, want %q", name, got, want)
				}
			}
		})
	}
}
