package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZipRequests)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Get("/api/health", h.health)
	router.Get("/api/version", h.getServerVersion)
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	router.Route("/api/records/{table}", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.listRecords)
		r.Post("/", h.insertRecord)
		r.Get("/{localID}", h.getRecord)
		r.Put("/{localID}", h.updateRecord)
		r.Delete("/{localID}", h.deleteRecord)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
