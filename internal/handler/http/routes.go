package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/register", h.register)
		r.Post("/forgot-password", h.forgotPassword)
		r.Get("/reset-password/{id}/{token}", h.resetPasswordGet)
		r.Post("/reset-password/{id}/{token}", h.resetPasswordPost)
	})

	// protected routes
	router.Route("/api/todos", func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/", h.getTodos)
		r.Post("/", h.createTodo)
		r.Put("/{id}", h.updateTodo)
		r.Patch("/{id}/complete", h.toggleTodo)
		r.Delete("/{id}", h.deleteTodo)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
