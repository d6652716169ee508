package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopward/commerce-api/pkg/database"
)

func newTestRateLimiter(t *testing.T) *RateLimiter {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRateLimiter(&database.Redis{Client: client})
}

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	limiter := newTestRateLimiter(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "client-1", 5, time.Minute)
		if err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
		if !allowed {
			t.Fatalf("Request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	limiter := newTestRateLimiter(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := limiter.Allow(ctx, "client-1", 3, time.Minute); err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
	}

	allowed, err := limiter.Allow(ctx, "client-1", 3, time.Minute)
	if allowed {
		t.Error("Request over the limit should be blocked")
	}
	if err == nil || !strings.Contains(err.Error(), "rate limit exceeded") {
		t.Errorf("Expected a rate limit exceeded error, got %v", err)
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := newTestRateLimiter(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := limiter.Allow(ctx, "client-1", 2, time.Minute); err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
	}

	allowed, err := limiter.Allow(ctx, "client-2", 2, time.Minute)
	if err != nil {
		t.Fatalf("Other client's request failed: %v", err)
	}
	if !allowed {
		t.Error("One client's traffic must not throttle another")
	}
}

func TestRateLimiterRemaining(t *testing.T) {
	limiter := newTestRateLimiter(t)
	ctx := context.Background()

	remaining, err := limiter.Remaining(ctx, "client-1", 5, time.Minute)
	if err != nil {
		t.Fatalf("Failed to read remaining: %v", err)
	}
	if remaining != 5 {
		t.Errorf("Expected 5 remaining before any traffic, got %d", remaining)
	}

	for i := 0; i < 2; i++ {
		if _, err := limiter.Allow(ctx, "client-1", 5, time.Minute); err != nil {
			t.Fatalf("Request %d failed: %v", i+1, err)
		}
	}

	remaining, err = limiter.Remaining(ctx, "client-1", 5, time.Minute)
	if err != nil {
		t.Fatalf("Failed to read remaining: %v", err)
	}
	if remaining != 3 {
		t.Errorf("Expected 3 remaining after 2 requests, got %d", remaining)
	}
}
