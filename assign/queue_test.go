// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assign

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestQueueRunsInOrderWithDelay(t *testing.T) {
	defer goleak.VerifyNone(t)

	const delay = 20 * time.Millisecond
	q := NewQueue(delay)
	defer q.Close()

	var stamps []time.Time
	var order []int
	for i := 0; i < 4; i++ {
		i := i
		require.NoError(t, q.Do(func() {
			order = append(order, i)
			stamps = append(stamps, time.Now())
		}))
	}

	assert.Equal(t, []int{0, 1, 2, 3}, order)
	for i := 1; i < len(stamps); i++ {
		assert.GreaterOrEqual(t, stamps[i].Sub(stamps[i-1]), delay)
	}
}

func TestQueueNeverRunsTasksConcurrently(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue(0)
	defer q.Close()

	var (
		mu       sync.Mutex
		running  int
		maxSeen  int
		finished int
		wg       sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Do(func() {
				mu.Lock()
				running++
				if running > maxSeen {
					maxSeen = running
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				running--
				finished++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 20, finished)
}

func TestQueueClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	q := NewQueue(time.Millisecond)
	require.NoError(t, q.Do(func() {}))

	q.Close()
	q.Close() // idempotent

	called := false
	err := q.Do(func() { called = true })
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.False(t, called)
}
