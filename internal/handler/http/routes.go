// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Route("/api/records", func(r chi.Router) {
		r.Get("/", h.listRecords)
		r.Post("/", h.createRecord)
		r.Delete("/", h.deleteAllRecords)
		r.Get("/budget-status/{category}", h.checkBudget)
		r.Get("/{id}", h.getRecord)
		r.Put("/{id}", h.updateRecord)
		r.Delete("/{id}", h.deleteRecord)
	})

	router.Route("/api/budgets", func(r chi.Router) {
		r.Get("/", h.listBudgets)
		r.Post("/", h.createBudget)
		r.Delete("/", h.deleteAllBudgets)
		r.Get("/{id}", h.getBudget)
		r.Put("/{id}", h.updateBudget)
		r.Delete("/{id}", h.deleteBudget)
	})

	router.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Delete("/", h.deleteAllUsers)
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Get("/me", h.currentUser)
		r.Post("/password-reset", h.resetPassword)
		r.Put("/{id}", h.updateProfile)
		r.Delete("/{id}", h.deleteUser)
	})

	router.Route("/api/reports", func(r chi.Router) {
		r.Get("/balance", h.balance)
		r.Get("/monthly", h.monthly)
		r.Get("/notifications", h.notifications)
	})

	return router
}
