package utils

import (
	"sync"
	"time"
)

// Debounce returns a wrapper that delays invoking fn until wait has elapsed
// since the last call. Concurrent callers share one timer.
func Debounce(fn func(), wait time.Duration) func() {
	var mu sync.Mutex
	var timer *time.Timer

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, fn)
	}
}

// Throttle returns a wrapper that invokes fn at most once per limit.
// Calls inside the window are dropped, not queued.
func Throttle(fn func(), limit time.Duration) func() {
	var mu sync.Mutex
	var last time.Time

	return func() {
		mu.Lock()
		defer mu.Unlock()
		if time.Since(last) < limit {
			return
		}
		last = time.Now()
		fn()
	}
}
