package config

import (
	"testing"
	"time"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	if !cfg.Enabled {
		t.Fatal("limiter disabled by default")
	}
	if cfg.Capacity != 60 {
		t.Fatalf("capacity = %d, want 60", cfg.Capacity)
	}
	if cfg.RefillInterval != time.Second {
		t.Fatalf("refill interval = %v, want 1s", cfg.RefillInterval)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("ttl %v shorter than five refill intervals", cfg.TTL)
	}
}

func TestLoadRateLimitConfigNormalization(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-2")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "-5s")
	t.Setenv("RATE_LIMIT_TTL", "1ms")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity < 1 {
		t.Fatalf("capacity = %d", cfg.Capacity)
	}
	if cfg.RefillTokens < 1 {
		t.Fatalf("refill tokens = %d", cfg.RefillTokens)
	}
	if cfg.RefillInterval <= 0 {
		t.Fatalf("refill interval = %v", cfg.RefillInterval)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("ttl %v shorter than five refill intervals", cfg.TTL)
	}
}

func TestLoadRateLimitConfigBurstAlias(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_REFILL_EVERY", "2s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 10 {
		t.Fatalf("capacity = %d, want 10", cfg.Capacity)
	}
	if cfg.RefillTokens != 1 || cfg.RefillInterval != 2*time.Second {
		t.Fatalf("refill = %d per %v, want 1 per 2s", cfg.RefillTokens, cfg.RefillInterval)
	}
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Fatal("cache disabled by default")
	}
	if !cfg.Methods["GET"] {
		t.Fatal("GET not cached by default")
	}
	if cfg.Methods["POST"] {
		t.Fatal("POST cached by default")
	}
	if cfg.TTL <= 0 {
		t.Fatalf("ttl = %v", cfg.TTL)
	}
}
