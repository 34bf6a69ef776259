package utils

import (
	"testing"
	"time"
)

func TestGetEnvDurationOrDefault(t *testing.T) {
	t.Setenv("GAMES_CACHE_TTL", "90s")
	if got := GetEnvDurationOrDefault("GAMES_CACHE_TTL", time.Minute); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}

	t.Setenv("GAMES_CACHE_TTL", "soon")
	if got := GetEnvDurationOrDefault("GAMES_CACHE_TTL", time.Minute); got != time.Minute {
		t.Fatalf("expected default for invalid value, got %s", got)
	}

	t.Setenv("GAMES_CACHE_TTL", "-5s")
	if got := GetEnvDurationOrDefault("GAMES_CACHE_TTL", time.Minute); got != time.Minute {
		t.Fatalf("expected default for negative value, got %s", got)
	}
}

func TestGetEnvInt64OrDefault(t *testing.T) {
	t.Setenv("PRICE_PER_UNIT_CENTS", " 1500 ")
	if got := GetEnvInt64OrDefault("PRICE_PER_UNIT_CENTS", 1000); got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}

	t.Setenv("PRICE_PER_UNIT_CENTS", "0")
	if got := GetEnvInt64OrDefault("PRICE_PER_UNIT_CENTS", 1000); got != 1000 {
		t.Fatalf("expected default for zero, got %d", got)
	}
}

func TestGetEnvBoolOrDefault(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "TRUE")
	if !IsTracingEnabled() {
		t.Fatal("expected tracing enabled")
	}

	t.Setenv("OTEL_TRACES_ENABLED", "maybe")
	if IsTracingEnabled() {
		t.Fatal("expected default for unparsable value")
	}
}

func TestGetEnvFloatOrDefault(t *testing.T) {
	t.Setenv("OTEL_TRACES_SAMPLER_RATIO", "0.25")
	if got := GetEnvFloatOrDefault("OTEL_TRACES_SAMPLER_RATIO", 1); got != 0.25 {
		t.Fatalf("expected 0.25, got %v", got)
	}

	t.Setenv("OTEL_TRACES_SAMPLER_RATIO", "")
	if got := GetEnvFloatOrDefault("OTEL_TRACES_SAMPLER_RATIO", 1); got != 1 {
		t.Fatalf("expected default, got %v", got)
	}
}
