// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-ahorra/internal/utils"
	"github.com/MKhiriev/go-ahorra/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserService.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var input models.UserInput
	if err := decodeJSON(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Register(r.Context(), input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var credentials models.Credentials
	if err := decodeJSON(r, &credentials); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.Login(r.Context(), credentials)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	loggerFromRequest(r, h).Debug().Int64("id", user.ID).Msg("user successfully logged in")
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserService.Logout(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.services.UserService.CurrentUser(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var reset models.PasswordReset
	if err := decodeJSON(r, &reset); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.UserService.ResetPassword(r.Context(), reset.Email, reset.Password); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var input models.UserInput
	if err = decodeJSON(r, &input); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), id, input)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err = h.services.UserService.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteAllUsers(w http.ResponseWriter, r *http.Request) {
	if err := h.services.UserService.DeleteAll(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
