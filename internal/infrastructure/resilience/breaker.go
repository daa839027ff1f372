// Package resilience guards provider calls with per-provider circuit
// breakers and a bounded retry policy, so one overloaded backend neither
// blocks requests nor absorbs redundant load.
package resilience

import (
	"sync"
	"time"
)

// Breaker tracks consecutive failures for a single provider and suppresses
// calls during a cooldown window. One instance exists per provider for the
// process lifetime; it is safe for concurrent use.
//
// Closed is the initial state. The breaker opens when consecutive failures
// reach the threshold and closes again by timeout: the first call after the
// cooldown elapses is allowed through, and its outcome decides whether the
// circuit stays closed or reopens.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration

	failures  int
	openUntil time.Time

	now func() time.Time
}

// NewBreaker builds a closed breaker.
func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	return &Breaker{threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Allow reports whether a call may be attempted now. It never blocks or
// queues; an open circuit answers false immediately.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.now().Compare(b.openUntil) >= 0
}

// RecordSuccess resets the failure count and closes the circuit.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.openUntil = time.Time{}
}

// RecordFailure counts one provider-health failure (transport error,
// timeout, or 5xx). Reaching the threshold opens the circuit for the
// cooldown window. Client errors must not be recorded here.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= b.threshold {
		b.openUntil = b.now().Add(b.cooldown)
	}
}

// Failures returns the current consecutive failure count.
func (b *Breaker) Failures() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.failures
}
