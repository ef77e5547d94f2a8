package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/fftourney/hub/internal/hub"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	sess := deps.Session

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New(hub.AppName+" API", "/openapi.json", "/docs"))

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", handleState(sess))
		r.Get("/config", handleConfig(sess))
		r.Get("/tournaments", handleListTournaments(sess))
		r.Get("/tournaments/{id}", handleGetTournament(sess))
		r.Get("/tournaments/{id}/registration", handleRegistration(sess))
		r.Post("/tournaments/{id}/join", handleJoin(sess))

		r.Get("/profile", handleGetProfile(sess))
		r.Put("/profile", handleUpdateProfile(sess))
		r.Get("/history", handleHistory(sess))
		r.Delete("/local-data", handleResetLocalData(sess))

		r.Get("/events", handleEvents(sess))

		r.Post("/admin/login", handleAdminLogin(deps.Auth, deps.AdminSessions))
		r.Post("/admin/logout", handleAdminLogout(logger, deps.AdminSessions))
		r.Get("/admin/me", handleAdminMe(deps.AdminSessions))

		r.Group(func(r chi.Router) {
			r.Use(adminAuthMiddleware(deps.AdminSessions))
			r.Get("/admin/draft", handleAdminDraft(sess))
			r.Post("/admin/tournaments/template", handleAdminTemplate())
			r.Post("/admin/export", handleAdminExport(logger, sess))
		})
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
