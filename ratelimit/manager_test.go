package ratelimit

import (
	"net/http"
	"sync"
	"testing"

	"golang.org/x/time/rate"
)

func TestNewRateLimiterManager(t *testing.T) {
	t.Run("with config", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 60, Burst: 10}, map[string]RateLimit{
			"example.com": {RateLimitPerMinute: 120},
		})
		if mgr == nil {
			t.Fatal("expected non-nil manager")
		}
		if mgr.hostToLimiter == nil {
			t.Error("expected hostToLimiter map to be initialized")
		}
		if len(mgr.perHost) != 1 {
			t.Error("expected per host config to be set")
		}
	})

	t.Run("with empty config", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{}, nil)
		if mgr == nil {
			t.Fatal("expected non-nil manager")
		}
		if mgr.perHost == nil {
			t.Error("expected perHost map to be initialized")
		}
	})
}

func TestGetLimiter(t *testing.T) {
	t.Run("creates limiter from defaults", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 60, Burst: 10}, nil)

		limiter := mgr.GetLimiter("localhost:8080")
		if limiter == nil {
			t.Fatal("expected non-nil limiter")
		}
		if limiter.Burst() != 10 {
			t.Errorf("expected burst of 10, got %d", limiter.Burst())
		}

		// 60 req/min = 1 req/sec
		if limiter.Limit() != rate.Limit(1.0) {
			t.Errorf("expected limit of 1, got %v", limiter.Limit())
		}
	})

	t.Run("returns same limiter for same host", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 30}, nil)

		limiter1 := mgr.GetLimiter("localhost:8080")
		limiter2 := mgr.GetLimiter("LOCALHOST:8080")

		if limiter1 != limiter2 {
			t.Error("expected same limiter instance for same host")
		}
	})

	t.Run("different limiters for different hosts", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 30}, nil)

		if mgr.GetLimiter("a.example") == mgr.GetLimiter("b.example") {
			t.Error("expected different limiter instances for different hosts")
		}
	})

	t.Run("per host override", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 60, Burst: 10}, map[string]RateLimit{
			"Slow.Example": {RateLimitPerMinute: 6, Burst: 2},
		})

		limiter := mgr.GetLimiter("slow.example")
		if limiter.Burst() != 2 {
			t.Errorf("expected burst of 2, got %d", limiter.Burst())
		}
		if limiter.Limit() != rate.Limit(0.1) {
			t.Errorf("expected limit of 0.1, got %v", limiter.Limit())
		}
	})

	t.Run("disabled when rate is zero", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{}, nil)

		if mgr.GetLimiter("localhost") != nil {
			t.Error("expected nil limiter when limiting is disabled")
		}
	})

	t.Run("default burst when unset", func(t *testing.T) {
		mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 30}, nil)

		limiter := mgr.GetLimiter("localhost")
		if limiter.Burst() != 1 {
			t.Errorf("expected default burst of 1, got %d", limiter.Burst())
		}
	})
}

func TestForRequest(t *testing.T) {
	mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 60}, nil)

	req, _ := http.NewRequest(http.MethodPost, "http://localhost:8080/logout", nil)
	if mgr.ForRequest(req) != mgr.GetLimiter("localhost:8080") {
		t.Error("expected request limiter to be keyed by host")
	}
	if mgr.ForRequest(nil) != nil {
		t.Error("expected nil limiter for nil request")
	}
}

func TestDefaultBurstForLimit(t *testing.T) {
	tests := []struct {
		name          string
		limit         rate.Limit
		expectedBurst int
	}{
		{"limit less than 1", rate.Limit(0.5), 1},
		{"limit equal to 1", rate.Limit(1.0), 1},
		{"limit greater than 1", rate.Limit(2.5), 3},
		{"limit with decimal", rate.Limit(10.1), 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := defaultBurstForLimit(tt.limit); got != tt.expectedBurst {
				t.Errorf("expected burst %d, got %d", tt.expectedBurst, got)
			}
		})
	}
}

func TestGetLimiter_Concurrent(t *testing.T) {
	mgr := NewRateLimiterManager(RateLimit{RateLimitPerMinute: 60}, nil)

	var wg sync.WaitGroup
	limiters := make([]*rate.Limiter, 50)
	for i := range limiters {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			limiters[i] = mgr.GetLimiter("localhost")
		}(i)
	}
	wg.Wait()

	for _, l := range limiters {
		if l != limiters[0] {
			t.Fatal("expected all goroutines to share one limiter")
		}
	}
}
