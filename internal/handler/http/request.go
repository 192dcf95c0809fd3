// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ahorra/internal/logger"
)

// decodeJSON reads the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", errInvalidData, err)
	}
	return nil
}

// idParam parses the {id} path parameter.
func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", errInvalidData, raw)
	}
	return id, nil
}

// loggerFromRequest prefers the request-scoped logger set by withTraceID.
func loggerFromRequest(r *http.Request, h *Handler) *logger.Logger {
	return logger.Ctx(r.Context(), h.logger)
}
