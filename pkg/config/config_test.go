package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port < 0 {
		return errors.New("port must be non-negative")
	}
	return nil
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoad_ExpandsEnvAndKeepsDefaults(t *testing.T) {
	t.Setenv("SIFT_TEST_NAME", "from-env")
	p := writeConfig(t, "name: ${SIFT_TEST_NAME}\n")

	cfg := sample{Port: 6969}
	if err := Load(p, &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("Name = %q", cfg.Name)
	}
	if cfg.Port != 6969 {
		t.Errorf("Port = %d, default should survive", cfg.Port)
	}
}

func TestLoad_RunsValidator(t *testing.T) {
	p := writeConfig(t, "port: -5\n")
	var cfg sample
	err := Load(p, &cfg)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Fatalf("err = %v, want validation failure", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	p := writeConfig(t, "name: [unterminated\n")
	var cfg sample
	if err := Load(p, &cfg); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOptional_MissingFileKeepsDefaults(t *testing.T) {
	cfg := sample{Name: "default", Port: 1}
	loaded, err := LoadOptional(filepath.Join(t.TempDir(), "absent.yaml"), &cfg)
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if loaded {
		t.Error("loaded should be false for a missing file")
	}
	if cfg.Name != "default" {
		t.Errorf("Name = %q", cfg.Name)
	}
}

func TestLoadOptional_ExistingFile(t *testing.T) {
	p := writeConfig(t, "name: present\n")
	var cfg sample
	loaded, err := LoadOptional(p, &cfg)
	if err != nil || !loaded {
		t.Fatalf("LoadOptional = %v, %v", loaded, err)
	}
	if cfg.Name != "present" {
		t.Errorf("Name = %q", cfg.Name)
	}
}
