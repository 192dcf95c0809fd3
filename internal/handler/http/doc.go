// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the JSON API of go-ahorra.
//
// It exposes route wiring, request handlers and middleware. Request tracing,
// access logging, panic recovery and the request timeout are applied here
// before requests are delegated to the service layer. Failures are mapped to
// a status code and a generic message; storage detail is only logged.
package http
