// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-ahorra/internal/app"
	"github.com/MKhiriev/go-ahorra/internal/service"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/internal/validators"
)

// errInvalidData is returned for undecodable bodies and malformed parameters.
var errInvalidData = app.NewError(app.MsgInvalidDataProvided)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is matched in order; the first hit wins.
var errorStatuses = []errorStatus{
	{errInvalidData, http.StatusBadRequest},
	{validators.ErrValidation, http.StatusBadRequest},

	{service.ErrWrongPassword, http.StatusUnauthorized},
	{service.ErrNotLoggedIn, http.StatusUnauthorized},

	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrRecordNotFound, http.StatusNotFound},
	{service.ErrBudgetNotFound, http.StatusNotFound},

	{service.ErrEmailTaken, http.StatusConflict},
	{service.ErrBudgetAlreadyExists, http.StatusConflict},

	{store.ErrNotInitialized, http.StatusServiceUnavailable},
}

func statusFromError(err error) int {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns text safe to show to the caller. Validation
// messages describe the rejected input; everything else is reduced to its
// user-facing message.
func messageFromError(err error) string {
	if errors.Is(err, validators.ErrValidation) {
		return err.Error()
	}
	if errors.Is(err, store.ErrNotInitialized) {
		return app.MsgStorageNotInitialized
	}
	return app.UserMessage(err)
}

// writeError logs err with the request logger and replies with its status
// and message. Server-side failures are logged at error level.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := loggerFromRequest(r, h)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	http.Error(w, messageFromError(err), status)
}
