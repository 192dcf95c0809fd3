// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ahorra/internal/utils"
	"github.com/MKhiriev/go-ahorra/models"
)

func (h *Handler) listBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.services.BudgetService.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, budgets, http.StatusOK)
}

func (h *Handler) getBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	budget, err := h.services.BudgetService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, budget, http.StatusOK)
}

func (h *Handler) createBudget(w http.ResponseWriter, r *http.Request) {
	var input models.BudgetInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	budget, err := h.services.BudgetService.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, budget, http.StatusCreated)
}

func (h *Handler) updateBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var input models.BudgetInput
	if err = decodeJSON(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	budget, err := h.services.BudgetService.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, budget, http.StatusOK)
}

func (h *Handler) deleteBudget(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.BudgetService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllBudgets(w http.ResponseWriter, r *http.Request) {
	if err := h.services.BudgetService.DeleteAll(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
