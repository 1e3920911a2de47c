package utils

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebounceCollapsesBursts(t *testing.T) {
	var calls atomic.Int32
	debounced := Debounce(func() { calls.Add(1) }, 30*time.Millisecond)

	for i := 0; i < 5; i++ {
		debounced()
		time.Sleep(5 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		500*time.Millisecond, 10*time.Millisecond)
}

func TestDebounceFiresAgainAfterQuiet(t *testing.T) {
	var calls atomic.Int32
	debounced := Debounce(func() { calls.Add(1) }, 10*time.Millisecond)

	debounced()
	assert.Eventually(t, func() bool { return calls.Load() == 1 },
		500*time.Millisecond, 5*time.Millisecond)

	debounced()
	assert.Eventually(t, func() bool { return calls.Load() == 2 },
		500*time.Millisecond, 5*time.Millisecond)
}

func TestThrottleDropsInsideWindow(t *testing.T) {
	var calls atomic.Int32
	throttled := Throttle(func() { calls.Add(1) }, 100*time.Millisecond)

	throttled()
	throttled()
	throttled()

	assert.Equal(t, int32(1), calls.Load())
}

func TestThrottleAllowsAfterWindow(t *testing.T) {
	var calls atomic.Int32
	throttled := Throttle(func() { calls.Add(1) }, 20*time.Millisecond)

	throttled()
	time.Sleep(30 * time.Millisecond)
	throttled()

	assert.Equal(t, int32(2), calls.Load())
}
