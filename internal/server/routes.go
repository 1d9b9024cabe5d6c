package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	broker := NewBroker()
	rounds := NewManager(deps.Selector, deps.Hints, deps.Sessions, broker, logger, deps.Rules)

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("City Guesser API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.DB))
	r.Get("/ws/echo", handleWSEcho(logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/session", handleCreateSession(deps.Sessions))

		// SSE cannot carry an Authorization header; the token rides in
		// the query string instead.
		r.Get("/round/events", handleEvents(broker, deps.Sessions))

		r.Group(func(r chi.Router) {
			r.Use(sessionMiddleware(deps.Sessions))
			r.Delete("/session", handleEndSession(deps.Sessions, rounds))
			r.Post("/round/start", handleStartRound(rounds))
			r.Get("/round", handleRoundState(rounds))
			r.Post("/round/hint", handleHint(rounds))
			r.Post("/round/guess", handleGuess(rounds))
			r.Post("/round/restart", handleRestart(rounds))
			r.Get("/geocode", handleReverseGeocode(deps.Geocoder))
		})
	})

	// Ops surface, cookie auth on the shared DB.
	r.Post("/api/admin/login", handleAdminLogin(deps.DB))
	r.Post("/api/admin/logout", handleAdminLogout(deps.DB))
	r.Get("/api/admin/me", handleAdminMe(deps.DB))
	r.Get("/api/admin/sessions", handleAdminListSessions(deps.DB, deps.Sessions))

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
