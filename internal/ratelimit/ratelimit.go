// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ratelimit provides named per-client rate limiters whose
// thresholds live in the configuracao table, so operators can tune
// them at runtime without a restart.
package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Settings is the subset of the settings store the limiter needs.
type Settings interface {
	Get(key, fallback string) (string, error)
}

// window counts requests inside a single fixed window for one client.
type window struct {
	count int
	start time.Time
}

// Limiter is a named fixed-window rate limiter. Each request is counted
// against the window that started with the client's first request; when
// the window elapses the count resets. The max and duration are re-read
// from settings on every check, falling back to the defaults the limiter
// was registered with.
type Limiter struct {
	name       string
	maxKey     string
	minutesKey string
	defMax     int
	defMinutes int
	settings   Settings

	mu      sync.Mutex
	clients map[string]*window

	// now is swappable for tests.
	now func() time.Time
}

// NewLimiter creates a limiter identified by name. Thresholds are read
// from the settings keys "rate_limit_<name>_max" and
// "rate_limit_<name>_minutos"; defMax and defMinutes apply when the
// keys are absent or unparseable.
func NewLimiter(name string, defMax, defMinutes int, settings Settings) *Limiter {
	return &Limiter{
		name:       name,
		maxKey:     "rate_limit_" + name + "_max",
		minutesKey: "rate_limit_" + name + "_minutos",
		defMax:     defMax,
		defMinutes: defMinutes,
		settings:   settings,
		clients:    make(map[string]*window),
		now:        time.Now,
	}
}

// limits resolves the current max and window duration. A broken settings
// row must never lock clients out, so anything unparseable or
// non-positive falls back to the registered defaults.
func (l *Limiter) limits() (int, time.Duration) {
	max := l.defMax
	if v, err := l.settings.Get(l.maxKey, ""); err == nil && v != "" {
		if n, perr := strconv.Atoi(strings.TrimSpace(v)); perr == nil && n > 0 {
			max = n
		} else {
			slog.Warn("invalid rate limit setting", "key", l.maxKey, "value", v)
		}
	}

	minutes := l.defMinutes
	if v, err := l.settings.Get(l.minutesKey, ""); err == nil && v != "" {
		if n, perr := strconv.Atoi(strings.TrimSpace(v)); perr == nil && n > 0 {
			minutes = n
		} else {
			slog.Warn("invalid rate limit setting", "key", l.minutesKey, "value", v)
		}
	}

	return max, time.Duration(minutes) * time.Minute
}

// Check records a request for the given client key and reports whether
// it is within the limit. It never returns an error: the limiter fails
// open by design of its settings fallbacks.
func (l *Limiter) Check(key string) bool {
	max, dur := l.limits()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[key]
	if !ok || now.After(w.start.Add(dur)) {
		w = &window{start: now}
		l.clients[key] = w
	}

	w.count++
	return w.count <= max
}

// Retry returns how long the client must wait before the current
// window expires. Used to render a friendly notice alongside a denial.
func (l *Limiter) Retry(key string) time.Duration {
	_, dur := l.limits()
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[key]
	if !ok {
		return 0
	}
	rest := w.start.Add(dur).Sub(now)
	if rest < 0 {
		return 0
	}
	return rest
}

// cleanup drops windows that expired before the cutoff.
func (l *Limiter) cleanup(cutoff time.Time, dur time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.clients {
		if cutoff.After(w.start.Add(dur)) {
			delete(l.clients, key)
		}
	}
}

// Registry hands out limiters by name, creating each one on first use
// so every caller of the same name shares the same client windows.
type Registry struct {
	mu       sync.Mutex
	limiters map[string]*Limiter
	settings Settings
	stopCh   chan struct{}
}

// NewRegistry creates a registry backed by the given settings store.
// It starts a background goroutine that periodically drops expired
// client windows from all registered limiters.
func NewRegistry(settings Settings) *Registry {
	r := &Registry{
		limiters: make(map[string]*Limiter),
		settings: settings,
		stopCh:   make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.sweep()
			case <-r.stopCh:
				return
			}
		}
	}()

	return r
}

// Stop terminates the background cleanup goroutine.
func (r *Registry) Stop() {
	close(r.stopCh)
}

// Limiter returns the named limiter, creating it with the given
// defaults if it does not exist yet. Defaults passed on later calls
// for the same name are ignored.
func (r *Registry) Limiter(name string, defMax, defMinutes int) *Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.limiters[name]
	if !ok {
		l = NewLimiter(name, defMax, defMinutes, r.settings)
		r.limiters[name] = l
	}
	return l
}

func (r *Registry) sweep() {
	r.mu.Lock()
	limiters := make([]*Limiter, 0, len(r.limiters))
	for _, l := range r.limiters {
		limiters = append(limiters, l)
	}
	r.mu.Unlock()

	now := time.Now()
	for _, l := range limiters {
		_, dur := l.limits()
		l.cleanup(now, dur)
	}
}

// ClientKey derives the rate limiting key for a request, checking
// X-Forwarded-For and X-Real-IP headers for proxied requests.
func ClientKey(r *http.Request) string {
	// X-Forwarded-For may contain multiple IPs; the leftmost is the
	// original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// Fall back to RemoteAddr (strip port).
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
