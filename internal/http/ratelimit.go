package http

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// rateWindow is the span over which write requests are counted.
	rateWindow = time.Minute

	// defaultWriteLimit applies when no limit is configured.
	defaultWriteLimit = 60

	sweepInterval    = 5 * time.Minute
	staleWindowAfter = 10 * time.Minute
)

// rateLimiter throttles write requests per client IP using fixed
// one-minute windows. Each client gets a counter anchored at its first
// request; the counter resets when the window elapses. Idle clients are
// swept by a background goroutine.
type rateLimiter struct {
	mu    sync.Mutex
	limit int
	seen  map[string]*requestWindow

	quit     chan struct{}
	quitOnce sync.Once
}

type requestWindow struct {
	start time.Time
	count int
}

func newRateLimiter(limit int) *rateLimiter {
	if limit <= 0 {
		limit = defaultWriteLimit
	}
	rl := &rateLimiter{
		limit: limit,
		seen:  make(map[string]*requestWindow),
		quit:  make(chan struct{}),
	}
	go rl.sweepLoop()
	return rl
}

// allow records a request from clientIP and reports whether it stays
// within the configured per-minute limit.
func (rl *rateLimiter) allow(clientIP string, metrics *securityMetrics) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.seen[clientIP]
	if !ok || now.Sub(w.start) >= rateWindow {
		rl.seen[clientIP] = &requestWindow{start: now, count: 1}
		return true
	}

	w.count++
	if w.count > rl.limit {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}
	return true
}

func (rl *rateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweep(time.Now())
		case <-rl.quit:
			return
		}
	}
}

// sweep drops windows that have not seen a request in a while, keeping
// the map bounded by the number of recently active clients.
func (rl *rateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	for ip, w := range rl.seen {
		if now.Sub(w.start) > staleWindowAfter {
			delete(rl.seen, ip)
		}
	}
}

// stop terminates the sweep goroutine. Safe to call more than once.
func (rl *rateLimiter) stop() {
	rl.quitOnce.Do(func() {
		close(rl.quit)
	})
}
