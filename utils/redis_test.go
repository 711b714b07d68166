package utils

import (
	"testing"

	"github.com/krisdikachi/Plancer/config"
)

func TestRedisOptionsFromConfig(t *testing.T) {
	opts := redisOptions(&config.Config{
		RedisAddr:     "cache.internal:6380",
		RedisPassword: "hunter2",
		RedisDB:       3,
	})

	if opts.Addr != "cache.internal:6380" {
		t.Errorf("expected configured addr, got %q", opts.Addr)
	}
	if opts.Password != "hunter2" {
		t.Errorf("expected configured password, got %q", opts.Password)
	}
	if opts.DB != 3 {
		t.Errorf("expected configured db, got %d", opts.DB)
	}
}

func TestRedisOptionsDefaultAddr(t *testing.T) {
	opts := redisOptions(&config.Config{})
	if opts.Addr != "localhost:6379" {
		t.Errorf("expected default addr, got %q", opts.Addr)
	}
}
