// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-ahorra/internal/utils"
)

func (h *Handler) balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.services.ReportService.Balance(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, balance, http.StatusOK)
}

// monthly serves ?year=YYYY, defaulting to the current year.
func (h *Handler) monthly(w http.ResponseWriter, r *http.Request) {
	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 9999 {
			h.writeError(w, r, fmt.Errorf("%w: year %q", errInvalidData, raw))
			return
		}
		year = parsed
	}

	months, err := h.services.ReportService.Monthly(r.Context(), year)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, months, http.StatusOK)
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.services.ReportService.Notifications(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, notifications, http.StatusOK)
}
