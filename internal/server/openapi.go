package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/fftourney/hub/internal/handler/health"
	"github.com/fftourney/hub/internal/hub"
	"github.com/fftourney/hub/internal/session"
)

type tournamentPath struct {
	ID string `path:"id"`
}

type tournamentFilter struct {
	Status    string `query:"status" description:"Open, Full or Completed (case-insensitive)."`
	MatchType string `query:"matchType" description:"Solo, Duo or Squad (case-insensitive)."`
}

type operation struct {
	method, path, summary, description string
	req                                any
	resps                              []resp
}

type resp struct {
	status      int
	body        any
	contentType string
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = hub.AppName + " API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Tournament catalog, player profile and registration links for the FF Tournament Hub.")

	unauthorized := resp{status: http.StatusUnauthorized, body: ErrorResponse{}}
	loading := resp{status: http.StatusServiceUnavailable, body: ErrorResponse{}}
	notFound := resp{status: http.StatusNotFound, body: ErrorResponse{}}

	ops := []operation{
		{
			method: http.MethodGet, path: "/healthz",
			summary:     "Health check",
			description: "Reports the reachability of the local database and, when configured, Redis.",
			resps: []resp{
				{status: http.StatusOK, body: health.Report{}},
				{status: http.StatusServiceUnavailable, body: health.Report{}},
			},
		},
		{
			method: http.MethodGet, path: "/api/state",
			summary:     "Session state",
			description: "Loading or ready, which source tier the catalog came from, and local data counts.",
			resps:       []resp{{status: http.StatusOK, body: session.Snapshot{}}},
		},
		{
			method: http.MethodGet, path: "/api/config",
			summary:     "App config",
			description: "Banners, general rules, payee UPI ID and admin WhatsApp number.",
			resps:       []resp{{status: http.StatusOK, body: hub.AppConfig{}}, loading},
		},
		{
			method: http.MethodGet, path: "/api/tournaments",
			summary:     "List tournaments",
			description: "Resolved tournaments in document order, optionally filtered.",
			req:         tournamentFilter{},
			resps:       []resp{{status: http.StatusOK, body: []hub.Tournament{}}, loading},
		},
		{
			method: http.MethodGet, path: "/api/tournaments/{id}",
			summary:     "Get tournament",
			description: "A single tournament with its fill percentage and whether the player has joined.",
			req:         tournamentPath{},
			resps:       []resp{{status: http.StatusOK, body: TournamentResponse{}}, notFound, loading},
		},
		{
			method: http.MethodGet, path: "/api/tournaments/{id}/registration",
			summary:     "Registration links",
			description: "UPI payment URI, QR code URL and WhatsApp confirmation URI. Requires a profile and an Open tournament.",
			req:         tournamentPath{},
			resps: []resp{
				{status: http.StatusOK, body: session.Registration{}},
				notFound,
				{status: http.StatusConflict, body: ErrorResponse{}},
				{status: http.StatusPreconditionFailed, body: ErrorResponse{}},
				loading,
			},
		},
		{
			method: http.MethodPost, path: "/api/tournaments/{id}/join",
			summary:     "Record join",
			description: "Appends the tournament to the join history unless already present. Slot counts are not changed.",
			req:         tournamentPath{},
			resps: []resp{
				{status: http.StatusCreated, body: JoinResponse{}},
				{status: http.StatusOK, body: JoinResponse{}},
				notFound,
				{status: http.StatusConflict, body: ErrorResponse{}},
				{status: http.StatusPreconditionFailed, body: ErrorResponse{}},
			},
		},
		{
			method: http.MethodGet, path: "/api/profile",
			summary:     "Get profile",
			description: "404 means the player has not onboarded yet.",
			resps:       []resp{{status: http.StatusOK, body: hub.UserProfile{}}, notFound},
		},
		{
			method: http.MethodPut, path: "/api/profile",
			summary:     "Save profile",
			description: "Replaces the profile. All fields except device are required.",
			req:         hub.UserProfile{},
			resps: []resp{
				{status: http.StatusOK, body: hub.UserProfile{}},
				{status: http.StatusBadRequest, body: ValidationErrorResponse{}},
			},
		},
		{
			method: http.MethodGet, path: "/api/history",
			summary:     "Join history",
			description: "Joined tournaments in the order they were joined.",
			resps:       []resp{{status: http.StatusOK, body: []hub.JoinedTournament{}}},
		},
		{
			method: http.MethodDelete, path: "/api/local-data",
			summary:     "Wipe local data",
			description: "Removes the stored profile and join history.",
			resps:       []resp{{status: http.StatusOK}},
		},
		{
			method: http.MethodGet, path: "/api/events",
			summary:     "SSE event stream",
			description: "Server-Sent Events named state, catalog, profile and history, each carrying the session state.",
			resps:       []resp{{status: http.StatusOK, contentType: "text/event-stream"}},
		},
		{
			method: http.MethodPost, path: "/api/admin/login",
			summary:     "Admin login",
			description: "Checks the shared passcode. Sets the admin_session cookie.",
			req:         AdminLoginRequest{},
			resps:       []resp{{status: http.StatusOK, body: AdminMeResponse{}}, unauthorized},
		},
		{
			method: http.MethodPost, path: "/api/admin/logout",
			summary:     "Admin logout",
			description: "Clears the admin session and cookie.",
			resps:       []resp{{status: http.StatusOK}},
		},
		{
			method: http.MethodGet, path: "/api/admin/me",
			summary:     "Current admin session",
			resps:       []resp{{status: http.StatusOK, body: AdminMeResponse{}}, unauthorized},
		},
		{
			method: http.MethodGet, path: "/api/admin/draft",
			summary:     "Admin draft",
			description: "The catalog as currently served, as a starting point for edits. Requires admin_session cookie.",
			resps:       []resp{{status: http.StatusOK, body: AdminDraft{}}, unauthorized, loading},
		},
		{
			method: http.MethodPost, path: "/api/admin/tournaments/template",
			summary:     "New tournament template",
			description: "A new tournament with default values and a generated ID. Requires admin_session cookie.",
			req:         AdminTemplateRequest{},
			resps:       []resp{{status: http.StatusCreated, body: hub.Tournament{}}, unauthorized},
		},
		{
			method: http.MethodPost, path: "/api/admin/export",
			summary:     "Export tournaments.json",
			description: "Formats the edited draft as the document to redeploy by hand. Nothing is stored. Requires admin_session cookie.",
			req:         AdminDraft{},
			resps:       []resp{{status: http.StatusOK, body: ExportResponse{}}, unauthorized},
		},
	}

	for _, op := range ops {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		if op.description != "" {
			oc.SetDescription(op.description)
		}
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		for _, rs := range op.resps {
			opts := []openapi.ContentOption{openapi.WithHTTPStatus(rs.status)}
			if rs.contentType != "" {
				opts = append(opts, openapi.WithContentType(rs.contentType))
			}
			oc.AddRespStructure(rs.body, opts...)
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
