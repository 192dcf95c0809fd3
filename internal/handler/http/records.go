// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ahorra/internal/utils"
	"github.com/MKhiriev/go-ahorra/models"
)

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	records, err := h.services.RecordService.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	record, err := h.services.RecordService.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	var input models.RecordInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	record, status, err := h.services.RecordService.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, models.NewRecordResult(record, status), http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var input models.RecordInput
	if err = decodeJSON(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	record, status, err := h.services.RecordService.Update(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, models.NewRecordResult(record, status), http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.RecordService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllRecords(w http.ResponseWriter, r *http.Request) {
	if err := h.services.RecordService.DeleteAll(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) checkBudget(w http.ResponseWriter, r *http.Request) {
	// chi matches on RawPath when the request carried escapes net/url does
	// not reproduce (an encoded '/'), and the param is then still escaped.
	// Otherwise it was already decoded and must be taken verbatim.
	category := chi.URLParam(r, "category")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(category)
		if err != nil {
			h.writeError(w, r, fmt.Errorf("%w: category: %w", errInvalidData, err))
			return
		}
		category = unescaped
	}

	status, err := h.services.RecordService.CheckBudget(r.Context(), category)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, status, http.StatusOK)
}
