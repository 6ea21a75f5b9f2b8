// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ratelimit

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeSettings is an in-memory Settings implementation.
type fakeSettings struct {
	mu     sync.Mutex
	values map[string]string
}

func (f *fakeSettings) Get(key, fallback string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (f *fakeSettings) set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = map[string]string{}
	}
	f.values[key] = value
}

func TestLimiterCheck(t *testing.T) {
	l := NewLimiter("test", 3, 1, &fakeSettings{})

	for i := 0; i < 3; i++ {
		if !l.Check("client-a") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}

	if l.Check("client-a") {
		t.Error("4th request should be rate-limited")
	}

	// Other clients have their own window.
	if !l.Check("client-b") {
		t.Error("different client should be allowed")
	}
}

func TestLimiterWindowExpiry(t *testing.T) {
	l := NewLimiter("test", 2, 1, &fakeSettings{})

	now := time.Now()
	l.now = func() time.Time { return now }

	l.Check("client")
	l.Check("client")
	if l.Check("client") {
		t.Fatal("should be rate-limited inside the window")
	}

	// Step past the window; count resets and requests flow again.
	now = now.Add(61 * time.Second)
	if !l.Check("client") {
		t.Error("should be allowed after the window expires")
	}
	if !l.Check("client") {
		t.Error("fresh window should permit up to the limit again")
	}
	if l.Check("client") {
		t.Error("fresh window still enforces the limit")
	}
}

func TestLimiterSettingsOverride(t *testing.T) {
	settings := &fakeSettings{}
	l := NewLimiter("artigos", 20, 1, settings)

	// Tighten the limit at runtime; the next check sees it immediately.
	settings.set("rate_limit_artigos_max", "1")

	if !l.Check("client") {
		t.Fatal("first request should be allowed")
	}
	if l.Check("client") {
		t.Error("second request should be denied under the tightened limit")
	}
}

func TestLimiterBadSettingsFallBack(t *testing.T) {
	settings := &fakeSettings{}
	settings.set("rate_limit_test_max", "not-a-number")
	settings.set("rate_limit_test_minutos", "-5")

	l := NewLimiter("test", 2, 1, settings)

	max, dur := l.limits()
	if max != 2 {
		t.Errorf("max = %d, want default 2", max)
	}
	if dur != time.Minute {
		t.Errorf("window = %v, want default 1m", dur)
	}
}

func TestLimiterRetry(t *testing.T) {
	l := NewLimiter("test", 1, 2, &fakeSettings{})

	now := time.Now()
	l.now = func() time.Time { return now }

	if l.Retry("client") != 0 {
		t.Error("unknown client should have no wait")
	}

	l.Check("client")
	now = now.Add(30 * time.Second)

	rest := l.Retry("client")
	if rest != 90*time.Second {
		t.Errorf("Retry = %v, want 90s", rest)
	}
}

func TestLimiterConcurrent(t *testing.T) {
	l := NewLimiter("test", 50, 1, &fakeSettings{})

	var wg sync.WaitGroup
	allowed := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Check("shared")
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 50 {
		t.Errorf("allowed %d of 100 concurrent requests, want exactly 50", count)
	}
}

func TestRegistrySharesLimiters(t *testing.T) {
	r := NewRegistry(&fakeSettings{})
	defer r.Stop()

	a := r.Limiter("artigos", 20, 1)
	b := r.Limiter("artigos", 99, 99)

	if a != b {
		t.Error("same name should return the same limiter")
	}
	if a.defMax != 20 {
		t.Errorf("defaults from the first registration should win, got %d", a.defMax)
	}

	other := r.Limiter("login", 5, 1)
	if other == a {
		t.Error("different names should get distinct limiters")
	}
}

func TestLimiterCleanup(t *testing.T) {
	l := NewLimiter("test", 5, 1, &fakeSettings{})

	for i := 0; i < 10; i++ {
		l.Check(fmt.Sprintf("client-%d", i))
	}
	if len(l.clients) != 10 {
		t.Fatalf("expected 10 tracked clients, got %d", len(l.clients))
	}

	l.cleanup(time.Now().Add(2*time.Minute), time.Minute)
	if len(l.clients) != 0 {
		t.Errorf("expected all expired windows removed, %d remain", len(l.clients))
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		expected   string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.1:12345",
			expected:   "192.168.1.1",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:80",
			xff:        "203.0.113.5",
			expected:   "203.0.113.5",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:80",
			xff:        "203.0.113.5, 10.0.0.2, 10.0.0.3",
			expected:   "203.0.113.5",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:80",
			xri:        "198.51.100.7",
			expected:   "198.51.100.7",
		},
		{
			name:       "forwarded-for wins over real-ip",
			remoteAddr: "10.0.0.1:80",
			xff:        "203.0.113.5",
			xri:        "198.51.100.7",
			expected:   "203.0.113.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			if got := ClientKey(req); got != tt.expected {
				t.Errorf("ClientKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}
