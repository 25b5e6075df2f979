package ratelimit

import (
	"sync"
	"time"
)

// Result reports the outcome of a limiter check.
type Result struct {
	Allowed   bool
	Remaining int
}

// Limiter throttles anonymous link creation per client key.
// Implementations: in-memory fixed window (single instance, tests) and a
// redis-backed counter for shared deployments.
type Limiter interface {
	Check(clientKey string) Result
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local fixed-window limiter.
// Not durable and not shared across instances; coarse anti-abuse only.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 10
	}
	if period <= 0 {
		period = time.Hour
	}
	return &MemoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

func (m *MemoryLimiter) Check(clientKey string) Result {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[clientKey]
	if !ok || !now.Before(w.resetAt) {
		m.windows[clientKey] = &window{count: 1, resetAt: now.Add(m.period)}
		return Result{Allowed: true, Remaining: m.limit - 1}
	}
	if w.count >= m.limit {
		return Result{Allowed: false, Remaining: 0}
	}
	w.count++
	return Result{Allowed: true, Remaining: m.limit - w.count}
}
