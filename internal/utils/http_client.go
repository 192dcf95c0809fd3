// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient embeds *resty.Client so callers use the resty request API
// directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a JSON client rooted at baseURL. Every request gets a
// fresh X-Trace-ID unless the caller already set one. A zero timeout leaves
// the resty default (none).
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			if r.Header.Get(TraceIDHeader) == "" {
				r.SetHeader(TraceIDHeader, NewTraceID())
			}
			return nil
		})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
