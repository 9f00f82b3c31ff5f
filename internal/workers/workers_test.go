// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Run_AllTasksAreCalled(t *testing.T) {
	results := make([]int, 50)

	err := NewPool(4).Run(context.Background(), len(results), func(_ context.Context, i int) error {
		results[i] = i * i
		return nil
	})
	require.NoError(t, err)

	for i, got := range results {
		assert.Equal(t, i*i, got)
	}
}

func TestPool_Run_Empty(t *testing.T) {
	err := NewPool(2).Run(context.Background(), 0, func(context.Context, int) error {
		t.Fatal("task must not run")
		return nil
	})
	assert.NoError(t, err)
}

func TestPool_Run_RespectsLimit(t *testing.T) {
	const limit = 3
	var running, peak atomic.Int32

	err := NewPool(limit).Run(context.Background(), 20, func(context.Context, int) error {
		n := running.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		running.Add(-1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int32(limit))
}

func TestPool_Run_FirstErrorWins(t *testing.T) {
	boom := errors.New("boom")

	err := NewPool(1).Run(context.Background(), 10, func(_ context.Context, i int) error {
		if i == 2 {
			return boom
		}
		return nil
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "task 2")
}

func TestPool_Run_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	err := NewPool(2).Run(ctx, 5, func(context.Context, int) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}

func TestNewPool_MinimumLimit(t *testing.T) {
	assert.Equal(t, 1, NewPool(0).Limit())
	assert.Equal(t, 1, NewPool(-5).Limit())
	assert.Equal(t, 8, NewPool(8).Limit())
}
