package main

import (
	"time"
)

// headlessFallbackFPS caps loops that would otherwise spin when the limit is
// disabled and nothing else throttles them.
const headlessFallbackFPS = 60

// FPSLimiter paces the frame loop to the current limit.
type FPSLimiter struct {
	limit func() int
	next  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// NewFPSLimiter reads the limit from limit on every frame, so changes made
// through the API apply immediately. A limit <= 0 disables pacing.
func NewFPSLimiter(limit func() int) *FPSLimiter {
	return &FPSLimiter{limit: limit, now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next frame is due. It sleeps most of the interval
// and spins the last 200µs for precision on high caps.
func (f *FPSLimiter) Wait() {
	limit := f.limit()
	if limit <= 0 {
		f.next = time.Time{}
		return
	}
	target := time.Second / time.Duration(limit)

	now := f.now()
	if f.next.IsZero() {
		f.next = now.Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := f.next.Sub(f.now())
		if remaining <= 0 {
			break
		}
		if remaining > 200*time.Microsecond {
			f.sleep(remaining - 200*time.Microsecond)
		}
		if !f.next.After(f.now()) {
			break
		}
	}

	// Resync after a hitch instead of trying to catch up.
	if late := f.now().Sub(f.next); late > target {
		f.next = f.now().Add(target)
	}
}
