// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient("http://localhost:8080", 3*time.Second)
	require.NotNil(t, client.Client)
	assert.Equal(t, "http://localhost:8080", client.BaseURL)
	assert.Equal(t, "application/json", client.Header.Get("Accept"))

	other := NewHTTPClient("http://localhost:8080", 0)
	assert.NotSame(t, client.Client, other.Client)
}

func TestHTTPClient_TraceID(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get(TraceIDHeader))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, time.Second)

	_, err := client.R().Get("/")
	require.NoError(t, err)
	_, err = client.R().SetHeader(TraceIDHeader, "fixed").Get("/")
	require.NoError(t, err)

	require.Len(t, got, 2)
	_, err = uuid.Parse(got[0])
	assert.NoError(t, err)
	assert.Equal(t, "fixed", got[1])
}
