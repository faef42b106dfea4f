package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// InitAuthRoutes returns the router of the auth service.
func (h *Handler) InitAuthRoutes() *chi.Mux {
	router := h.newRouter()

	router.Get("/", h.index)
	router.Get("/login", h.loginPage)
	router.Get("/register", h.registerPage)
	router.Get("/logout", h.logout)

	router.Post("/api/register", h.register)
	router.Post("/api/login", h.login)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// InitGameRoutes returns the router of the game service.
func (h *Handler) InitGameRoutes() *chi.Mux {
	router := h.newRouter()

	// pages carry the token in the query string or form
	router.Group(func(r chi.Router) {
		r.Get("/game", h.gamePage)
		r.Post("/collect_resources", h.collectResources)
		r.Post("/build/{building_type}", h.buildPage)
		r.Get("/logout", h.gameLogout)
	})

	// API routes with bearer authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/state", h.getState)
		r.Post("/api/collect", h.collect)
		r.Post("/api/build/{building_type}", h.build)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) newRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(middleware.Compress(5, "application/json", "text/html"))

	router.Get("/api/version", h.getServerVersion)
	router.Handle("/metrics", promhttp.Handler())

	return router
}
