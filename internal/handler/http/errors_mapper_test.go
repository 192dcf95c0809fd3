// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-ahorra/internal/app"
	"github.com/MKhiriev/go-ahorra/internal/service"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/internal/validators"
)

func TestStatusAndMessageFromError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "invalid body",
			err:         fmt.Errorf("%w: %w", errInvalidData, errors.New("unexpected EOF")),
			wantStatus:  http.StatusBadRequest,
			wantMessage: app.MsgInvalidDataProvided,
		},
		{
			name:        "validation keeps its description",
			err:         fmt.Errorf("%w: %w", service.ErrRecordNotSaved, validators.ErrNonPositive),
			wantStatus:  http.StatusBadRequest,
			wantMessage: fmt.Errorf("%w: %w", service.ErrRecordNotSaved, validators.ErrNonPositive).Error(),
		},
		{
			name:        "wrong password",
			err:         service.ErrWrongPassword,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: app.MsgWrongPassword,
		},
		{
			name:        "record not found",
			err:         fmt.Errorf("%w: %w", service.ErrRecordNotFound, store.ErrNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: app.MsgRecordNotFound,
		},
		{
			name:        "budget exists",
			err:         service.ErrBudgetAlreadyExists,
			wantStatus:  http.StatusConflict,
			wantMessage: app.MsgBudgetExists,
		},
		{
			name:        "storage not initialized",
			err:         fmt.Errorf("%w: %w", service.ErrRecordsNotLoaded, store.ErrNotInitialized),
			wantStatus:  http.StatusServiceUnavailable,
			wantMessage: app.MsgStorageNotInitialized,
		},
		{
			name:        "storage failure hides the cause",
			err:         fmt.Errorf("%w: %w", service.ErrRecordNotSaved, errors.New("disk I/O error")),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: app.MsgRecordNotSaved,
		},
		{
			name:        "unknown error",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: app.MsgInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, statusFromError(tt.err))
			assert.Equal(t, tt.wantMessage, messageFromError(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/budgets/9", nil)

	newTestHandler().writeError(rr, req, fmt.Errorf("%w: %w", service.ErrBudgetNotFound, store.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgBudgetNotFound, strings.TrimSpace(rr.Body.String()))
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")
}
