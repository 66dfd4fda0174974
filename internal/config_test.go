package internal

import (
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestHTTPConfig_Address(t *testing.T) {
	cfg := HTTPConfig{Host: "127.0.0.1", Port: 6969}
	if got := cfg.Address(); got != "127.0.0.1:6969" {
		t.Errorf("Address = %q", got)
	}
	cfg = HTTPConfig{Host: "::1", Port: 80}
	if got := cfg.Address(); got != "[::1]:80" {
		t.Errorf("Address = %q", got)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{-1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
	cfg := HTTPConfig{Port: 0}
	if err := cfg.Validate(); err != nil {
		t.Errorf("port 0 (ephemeral) should pass: %v", err)
	}
}

func TestCorpusConfig_RequiresPathAndExtensions(t *testing.T) {
	cfg := CorpusConfig{Path: "", Extensions: []string{".txt"}}
	if err := cfg.Validate(); err == nil {
		t.Error("empty path should fail")
	}
	cfg = CorpusConfig{Path: "./c", Extensions: nil}
	if err := cfg.Validate(); err == nil {
		t.Error("missing extensions should fail")
	}
	cfg = CorpusConfig{Path: "./c", Extensions: []string{".txt", "*.md"}}
	if err := cfg.Validate(); err == nil {
		t.Error("glob extension should fail")
	}
}

func TestMetricsConfig_PortOnlyCheckedWhenEnabled(t *testing.T) {
	cfg := MetricsConfig{Enabled: false, Port: 0}
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled metrics should pass: %v", err)
	}
	cfg = MetricsConfig{Enabled: true, Port: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("enabled metrics without port should fail")
	}
}

func TestFullConfig_PortCollision(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = cfg.App.HTTP.Port
	err := cfg.Validate()
	if err == nil {
		t.Fatal("colliding ports should fail")
	}
	if !strings.Contains(err.Error(), "collides") {
		t.Errorf("unexpected error: %v", err)
	}
}
