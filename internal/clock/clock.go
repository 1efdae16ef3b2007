// Package clock is the process-wide time source. Tests swap it with SetMock.
package clock

import (
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	nowFunc = time.Now
)

func Now() time.Time {
	mu.RLock()
	defer mu.RUnlock()
	return nowFunc()
}

func UTC() time.Time {
	return Now().UTC()
}

func Since(t time.Time) time.Duration {
	return Now().Sub(t)
}

// SetMock pins Now to t and returns a function restoring the real clock.
func SetMock(t time.Time) func() {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = func() time.Time { return t }
	return reset
}

func reset() {
	mu.Lock()
	defer mu.Unlock()
	nowFunc = time.Now
}
