package account

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// PopulateAccountRoutes expects h.LoadSession to already be in use on r
func PopulateAccountRoutes(r *chi.Router, h *Handler) {
	(*r).Get("/login", h.loginView)
	(*r).Get("/register", h.registerView)
	(*r).Get("/logout", h.logout)

	(*r).Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data"))
		r.Use(h.throttle.middleware)
		r.Post("/login", h.login)
		r.Post("/register", h.register)
	})

	(*r).Group(func(r chi.Router) {
		r.Use(EnsureLoggedIn)
		r.Get("/userHistory", h.userHistory)
	})
}
