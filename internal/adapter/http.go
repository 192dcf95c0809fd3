// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/utils"
	"github.com/MKhiriev/go-ahorra/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPServerAdapter returns a [ServerAdapter] for the server at address.
// A bare "host:port" is treated as http. A non-positive timeout disables the
// per-request deadline.
func NewHTTPServerAdapter(address string, timeout time.Duration, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	return &httpServerAdapter{client: utils.NewHTTPClient(baseURL, timeout), logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// call sends one request and decodes a 2xx JSON body into T. A nil body sends
// no payload.
func call[T any](ctx context.Context, h *httpServerAdapter, method, path string, body any) (T, error) {
	var result T

	resp, err := h.send(ctx, method, path, body)
	if err != nil {
		return result, err
	}
	if err = json.Unmarshal(resp.Body(), &result); err != nil {
		return result, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return result, nil
}

// exec is call for endpoints answering 204 No Content.
func (h *httpServerAdapter) exec(ctx context.Context, method, path string, body any) error {
	_, err := h.send(ctx, method, path, body)
	return err
}

func (h *httpServerAdapter) send(ctx context.Context, method, path string, body any) (*resty.Response, error) {
	req := h.client.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s request: %w", method, path, err)
	}

	h.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Str("trace_id", resp.Request.Header.Get(utils.TraceIDHeader)).
		Msg("api call")

	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func idPath(prefix string, id int64) string {
	return prefix + "/" + strconv.FormatInt(id, 10)
}

const (
	recordsPath = "/api/records"
	budgetsPath = "/api/budgets"
	usersPath   = "/api/users"
	reportsPath = "/api/reports"
)

func (h *httpServerAdapter) ListRecords(ctx context.Context) ([]models.Record, error) {
	return call[[]models.Record](ctx, h, http.MethodGet, recordsPath, nil)
}

func (h *httpServerAdapter) GetRecord(ctx context.Context, id int64) (models.Record, error) {
	return call[models.Record](ctx, h, http.MethodGet, idPath(recordsPath, id), nil)
}

func (h *httpServerAdapter) CreateRecord(ctx context.Context, in models.RecordInput) (models.RecordResult, error) {
	return call[models.RecordResult](ctx, h, http.MethodPost, recordsPath, in)
}

func (h *httpServerAdapter) UpdateRecord(ctx context.Context, id int64, in models.RecordInput) (models.RecordResult, error) {
	return call[models.RecordResult](ctx, h, http.MethodPut, idPath(recordsPath, id), in)
}

func (h *httpServerAdapter) DeleteRecord(ctx context.Context, id int64) error {
	return h.exec(ctx, http.MethodDelete, idPath(recordsPath, id), nil)
}

func (h *httpServerAdapter) DeleteAllRecords(ctx context.Context) error {
	return h.exec(ctx, http.MethodDelete, recordsPath, nil)
}

func (h *httpServerAdapter) BudgetStatus(ctx context.Context, category string) (models.BudgetStatus, error) {
	return call[models.BudgetStatus](ctx, h, http.MethodGet, recordsPath+"/budget-status/"+url.PathEscape(category), nil)
}

func (h *httpServerAdapter) ListBudgets(ctx context.Context) ([]models.Budget, error) {
	return call[[]models.Budget](ctx, h, http.MethodGet, budgetsPath, nil)
}

func (h *httpServerAdapter) GetBudget(ctx context.Context, id int64) (models.Budget, error) {
	return call[models.Budget](ctx, h, http.MethodGet, idPath(budgetsPath, id), nil)
}

func (h *httpServerAdapter) CreateBudget(ctx context.Context, in models.BudgetInput) (models.Budget, error) {
	return call[models.Budget](ctx, h, http.MethodPost, budgetsPath, in)
}

func (h *httpServerAdapter) UpdateBudget(ctx context.Context, id int64, in models.BudgetInput) (models.Budget, error) {
	return call[models.Budget](ctx, h, http.MethodPut, idPath(budgetsPath, id), in)
}

func (h *httpServerAdapter) DeleteBudget(ctx context.Context, id int64) error {
	return h.exec(ctx, http.MethodDelete, idPath(budgetsPath, id), nil)
}

func (h *httpServerAdapter) DeleteAllBudgets(ctx context.Context) error {
	return h.exec(ctx, http.MethodDelete, budgetsPath, nil)
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	return call[[]models.User](ctx, h, http.MethodGet, usersPath, nil)
}

func (h *httpServerAdapter) Register(ctx context.Context, in models.UserInput) (models.User, error) {
	return call[models.User](ctx, h, http.MethodPost, usersPath+"/register", in)
}

func (h *httpServerAdapter) Login(ctx context.Context, credentials models.Credentials) (models.User, error) {
	return call[models.User](ctx, h, http.MethodPost, usersPath+"/login", credentials)
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	return h.exec(ctx, http.MethodPost, usersPath+"/logout", nil)
}

func (h *httpServerAdapter) CurrentUser(ctx context.Context) (models.User, error) {
	return call[models.User](ctx, h, http.MethodGet, usersPath+"/me", nil)
}

func (h *httpServerAdapter) ResetPassword(ctx context.Context, reset models.PasswordReset) error {
	return h.exec(ctx, http.MethodPost, usersPath+"/password-reset", reset)
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, id int64, in models.UserInput) (models.User, error) {
	return call[models.User](ctx, h, http.MethodPut, idPath(usersPath, id), in)
}

func (h *httpServerAdapter) DeleteUser(ctx context.Context, id int64) error {
	return h.exec(ctx, http.MethodDelete, idPath(usersPath, id), nil)
}

func (h *httpServerAdapter) DeleteAllUsers(ctx context.Context) error {
	return h.exec(ctx, http.MethodDelete, usersPath, nil)
}

func (h *httpServerAdapter) Balance(ctx context.Context) (models.Balance, error) {
	return call[models.Balance](ctx, h, http.MethodGet, reportsPath+"/balance", nil)
}

func (h *httpServerAdapter) Monthly(ctx context.Context, year int) ([]models.MonthlyTotals, error) {
	return call[[]models.MonthlyTotals](ctx, h, http.MethodGet, reportsPath+"/monthly?year="+strconv.Itoa(year), nil)
}

func (h *httpServerAdapter) Notifications(ctx context.Context) ([]models.Notification, error) {
	return call[[]models.Notification](ctx, h, http.MethodGet, reportsPath+"/notifications", nil)
}
