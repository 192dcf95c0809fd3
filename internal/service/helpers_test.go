// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-ahorra/internal/config"
	"github.com/MKhiriev/go-ahorra/internal/logger"
	"github.com/MKhiriev/go-ahorra/internal/notify"
	"github.com/MKhiriev/go-ahorra/internal/store"
	"github.com/MKhiriev/go-ahorra/migrations"
	"github.com/MKhiriev/go-ahorra/models"
)

var testNow = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

// testClock is shared by the storage and the services so records land in
// whatever month the test sets.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testNow}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

type backend struct {
	name string
	open func(t *testing.T, clock *testClock) store.Storage
}

func backends() []backend {
	return []backend{
		{
			name: "sqlite",
			open: func(t *testing.T, clock *testClock) store.Storage {
				s, err := store.NewSQLStorage(migrations.DialectSQLite, ":memory:", logger.Nop(), store.WithClock(clock.Now))
				require.NoError(t, err)
				return s
			},
		},
		{
			name: "redis",
			open: func(t *testing.T, clock *testClock) store.Storage {
				mr := miniredis.RunT(t)
				return store.NewRedisStorage(config.KV{Address: mr.Addr(), KeyPrefix: "test"}, logger.Nop(), store.WithClock(clock.Now))
			},
		},
	}
}

// newTestServices opens b and wires every service over it.
func newTestServices(t *testing.T, b backend) (*Services, *testClock) {
	t.Helper()
	clock := newTestClock()
	s := b.open(t, clock)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { _ = s.Close() })

	cfg := config.StructuredConfig{App: config.App{BcryptCost: bcrypt.MinCost}}
	return NewServices(s, cfg, logger.Nop(), WithClock(clock.Now)), clock
}

// forEachBackend runs fn as a subtest against every storage backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, svc *Services, clock *testClock)) {
	for _, b := range backends() {
		t.Run(b.name, func(t *testing.T) {
			svc, clock := newTestServices(t, b)
			fn(t, svc, clock)
		})
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func requireDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func expense(name, amount, category string) models.RecordInput {
	return models.RecordInput{Name: name, Amount: dec(amount), Category: category, Kind: models.Expense}
}

func income(name, amount, category string) models.RecordInput {
	return models.RecordInput{Name: name, Amount: dec(amount), Category: category, Kind: models.Income}
}

// collect subscribes a listener to hub that appends every event to the
// returned slice.
func collect[E any](hub *notify.Hub[E]) (*[]E, *notify.Subscription) {
	var events []E
	sub := hub.Subscribe(func(_ context.Context, e E) error {
		events = append(events, e)
		return nil
	})
	return &events, sub
}
