package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		Whitelist:     make(map[string]bool),
		Blacklist:     make(map[string]bool),
		EndpointConfigs: []EndpointConfig{
			{Path: "/resumes", Method: "POST", Limit: 2, Window: time.Hour, Burst: 2},
			{Path: "/resumes/", Method: "GET", Limit: 50, Window: time.Minute},
		},
	}
}

func TestTokenBucketAllow(t *testing.T) {
	tb := newTokenBucket(3, 1.0)

	for i := 0; i < 3; i++ {
		if !tb.allow() {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if tb.allow() {
		t.Fatal("request beyond capacity should be denied")
	}
}

func TestTokenBucketRefill(t *testing.T) {
	tb := newTokenBucket(1, 1000.0) // refills in about a millisecond

	if !tb.allow() {
		t.Fatal("first request should be allowed")
	}
	time.Sleep(5 * time.Millisecond)
	if !tb.allow() {
		t.Fatal("request after refill should be allowed")
	}
}

func TestLimiterEndpointSpecific(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, _ := l.Allow("1.2.3.4", "/resumes", "POST")
	if !allowed {
		t.Fatal("first upload should be allowed")
	}
	allowed, _ = l.Allow("1.2.3.4", "/resumes", "POST")
	if !allowed {
		t.Fatal("second upload should be allowed")
	}
	allowed, info := l.Allow("1.2.3.4", "/resumes", "POST")
	if allowed {
		t.Fatal("third upload should be rate limited")
	}
	if info.RetryAfter <= 0 {
		t.Errorf("expected positive retry-after, got %v", info.RetryAfter)
	}

	// other clients have their own bucket
	allowed, _ = l.Allow("5.6.7.8", "/resumes", "POST")
	if !allowed {
		t.Fatal("other client should not be affected")
	}
}

func TestLimiterPrefixMatch(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	_, info := l.Allow("1.2.3.4", "/resumes/abc-123", "GET")
	if info.Limit != 50 {
		t.Errorf("expected status endpoint limit 50, got %d", info.Limit)
	}
}

func TestLimiterHealthUnlimited(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	for i := 0; i < 500; i++ {
		if allowed, _ := l.Allow("1.2.3.4", "/health", "GET"); !allowed {
			t.Fatal("health check must never be limited")
		}
	}
}

func TestLimiterWhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["10.0.0.2"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		if allowed, _ := l.Allow("10.0.0.1", "/resumes", "POST"); !allowed {
			t.Fatal("whitelisted client must not be limited")
		}
	}
	if allowed, _ := l.Allow("10.0.0.2", "/health", "GET"); allowed {
		t.Fatal("blacklisted client must be denied")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := l.Allow("x", "/resumes", "POST"); !allowed {
			t.Fatal("disabled limiter must allow everything")
		}
	}
}

func TestLimiterConcurrent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			client := fmt.Sprintf("client-%d", n%5)
			l.Allow(client, "/resumes", "POST")
			l.Allow(client, "/resumes/id", "GET")
		}(i)
	}
	wg.Wait()
}
