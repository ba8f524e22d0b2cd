package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/user/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes for any authenticated user
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/user/me", h.me)
		r.Put("/api/user/password", h.changePassword)

		r.Route("/api/transactions", func(r chi.Router) {
			r.Get("/", h.listTransactions)
			r.Post("/", h.createTransaction)
			r.Post("/recurrences/sweep", h.sweepRecurrences)
			r.Patch("/{id}", h.updateTransaction)
			r.Delete("/{id}", h.deleteTransaction)
		})

		r.Get("/api/summary/monthly", h.monthlySummary)
		r.Get("/api/catalog", h.catalog)
	})

	// admin routes
	router.Route("/api/admin", func(r chi.Router) {
		r.Use(h.auth, h.adminOnly)

		r.Get("/users", h.listUsers)
		r.Post("/users", h.createUser)
		r.Patch("/users/{id}/status", h.setUserStatus)
		r.Patch("/users/{id}/role", h.setUserRole)
		r.Patch("/users/{id}/group", h.setUserGroup)
		r.Get("/stats", h.stats)
		r.Get("/logs", h.accessLogs)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
