// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notify implements a typed, synchronous publish/subscribe hub.
//
// Listeners run in registration order on the publishing goroutine. A failing
// or panicking listener does not stop the others; all failures are joined
// into the error returned by [Hub.Publish]. Listeners may subscribe or
// unsubscribe (themselves or others) while a pass is running: a listener
// removed during a pass is skipped if it has not been invoked yet, and a
// listener added during a pass first runs on the next one.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/MKhiriev/go-ahorra/internal/logger"
)

// Listener receives one event.
type Listener[E any] func(ctx context.Context, event E) error

// Subscription is the handle returned by [Hub.Subscribe]. Each call returns
// a distinct handle, even for the same listener.
type Subscription struct {
	id     uint64
	active atomic.Bool
}

// ID identifies the subscription within its hub.
func (s *Subscription) ID() uint64 {
	return s.id
}

type entry[E any] struct {
	sub      *Subscription
	listener Listener[E]
}

// Hub fans events of type E out to its listeners.
type Hub[E any] struct {
	name   string
	logger *logger.Logger

	mu      sync.Mutex
	nextID  uint64
	entries []entry[E]
}

// NewHub returns an empty hub. name is used in log entries.
func NewHub[E any](name string, log *logger.Logger) *Hub[E] {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub[E]{name: name, logger: log}
}

// Subscribe registers listener and returns its handle.
func (h *Hub[E]) Subscribe(listener Listener[E]) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	sub := &Subscription{id: h.nextID}
	sub.active.Store(true)
	h.entries = append(h.entries, entry[E]{sub: sub, listener: listener})
	return sub
}

// Unsubscribe removes sub. It reports false when sub is nil, foreign to
// this hub or already removed.
func (h *Hub[E]) Unsubscribe(sub *Subscription) bool {
	if sub == nil {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, e := range h.entries {
		if e.sub == sub {
			sub.active.Store(false)
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of active subscriptions.
func (h *Hub[E]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Publish delivers event to every listener registered before the call.
func (h *Hub[E]) Publish(ctx context.Context, event E) error {
	h.mu.Lock()
	snapshot := make([]entry[E], len(h.entries))
	copy(snapshot, h.entries)
	h.mu.Unlock()

	var errs []error
	for _, e := range snapshot {
		if !e.sub.active.Load() {
			continue
		}
		if err := h.deliver(ctx, e, event); err != nil {
			logger.Ctx(ctx, h.logger).Warn().
				Err(err).
				Str("func", "Hub.Publish").
				Str("hub", h.name).
				Uint64("subscription", e.sub.id).
				Msg("listener failed")
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *Hub[E]) deliver(ctx context.Context, e entry[E], event E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrListenerPanicked, r)
		}
	}()
	return e.listener(ctx, event)
}

// ErrListenerPanicked wraps a value recovered from a listener.
var ErrListenerPanicked = errors.New("listener panicked")
