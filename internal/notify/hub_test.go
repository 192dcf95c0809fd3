// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notify

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-ahorra/internal/logger"
)

func newTestHub() *Hub[string] {
	return NewHub[string]("test", logger.Nop())
}

func TestHub_OneListenerOnePublish(t *testing.T) {
	h := newTestHub()
	calls := 0
	var got string
	h.Subscribe(func(_ context.Context, e string) error {
		calls++
		got = e
		return nil
	})

	require.NoError(t, h.Publish(context.Background(), "created"))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "created", got)
}

func TestHub_UnsubscribedListenerNotCalled(t *testing.T) {
	h := newTestHub()
	calls := 0
	sub := h.Subscribe(func(context.Context, string) error {
		calls++
		return nil
	})

	assert.True(t, h.Unsubscribe(sub))
	assert.False(t, h.Unsubscribe(sub))
	assert.False(t, h.Unsubscribe(nil))

	require.NoError(t, h.Publish(context.Background(), "x"))
	assert.Zero(t, calls)
	assert.Zero(t, h.Len())
}

func TestHub_RegistrationOrder(t *testing.T) {
	h := newTestHub()
	var order []int
	for i := range 5 {
		h.Subscribe(func(context.Context, string) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, h.Publish(context.Background(), "x"))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestHub_DuplicateListenersAreIndependent(t *testing.T) {
	h := newTestHub()
	calls := 0
	listener := func(context.Context, string) error {
		calls++
		return nil
	}

	first := h.Subscribe(listener)
	second := h.Subscribe(listener)
	assert.NotEqual(t, first.ID(), second.ID())

	require.NoError(t, h.Publish(context.Background(), "x"))
	assert.Equal(t, 2, calls)

	h.Unsubscribe(first)
	require.NoError(t, h.Publish(context.Background(), "x"))
	assert.Equal(t, 3, calls)
}

func TestHub_ErrorsAreIsolatedAndJoined(t *testing.T) {
	h := newTestHub()
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	var ran []string

	h.Subscribe(func(context.Context, string) error { ran = append(ran, "a"); return errA })
	h.Subscribe(func(context.Context, string) error { ran = append(ran, "ok"); return nil })
	h.Subscribe(func(context.Context, string) error { ran = append(ran, "b"); return errB })

	err := h.Publish(context.Background(), "x")

	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"a", "ok", "b"}, ran)
}

func TestHub_PanicIsRecovered(t *testing.T) {
	h := newTestHub()
	after := false

	h.Subscribe(func(context.Context, string) error { panic("boom") })
	h.Subscribe(func(context.Context, string) error { after = true; return nil })

	err := h.Publish(context.Background(), "x")

	assert.ErrorIs(t, err, ErrListenerPanicked)
	assert.Contains(t, err.Error(), "boom")
	assert.True(t, after)
}

func TestHub_SelfUnsubscribeDuringPass(t *testing.T) {
	h := newTestHub()
	calls := 0
	var sub *Subscription
	sub = h.Subscribe(func(context.Context, string) error {
		calls++
		h.Unsubscribe(sub)
		return nil
	})
	otherCalls := 0
	h.Subscribe(func(context.Context, string) error {
		otherCalls++
		return nil
	})

	require.NoError(t, h.Publish(context.Background(), "x"))
	require.NoError(t, h.Publish(context.Background(), "x"))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, otherCalls)
}

func TestHub_UnsubscribeLaterListenerDuringPass(t *testing.T) {
	h := newTestHub()
	var victim *Subscription
	victimCalls := 0

	h.Subscribe(func(context.Context, string) error {
		h.Unsubscribe(victim)
		return nil
	})
	victim = h.Subscribe(func(context.Context, string) error {
		victimCalls++
		return nil
	})

	require.NoError(t, h.Publish(context.Background(), "x"))
	assert.Zero(t, victimCalls)
}

func TestHub_SubscribeDuringPassRunsNextTime(t *testing.T) {
	h := newTestHub()
	lateCalls := 0
	added := false

	h.Subscribe(func(context.Context, string) error {
		if !added {
			added = true
			h.Subscribe(func(context.Context, string) error {
				lateCalls++
				return nil
			})
		}
		return nil
	})

	require.NoError(t, h.Publish(context.Background(), "x"))
	assert.Zero(t, lateCalls)

	require.NoError(t, h.Publish(context.Background(), "x"))
	assert.Equal(t, 1, lateCalls)
}

func TestHub_ConcurrentPublishAndSubscribe(t *testing.T) {
	h := NewHub[int]("concurrent", nil)
	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := h.Subscribe(func(context.Context, int) error {
				mu.Lock()
				total++
				mu.Unlock()
				return nil
			})
			h.Unsubscribe(sub)
		}()
		go func() {
			defer wg.Done()
			_ = h.Publish(context.Background(), 1)
		}()
	}
	wg.Wait()

	assert.Zero(t, h.Len())
}
