package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/afevis/modcheck/internal/infrastructure/config"
)

func TestLoadSeedsDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := config.NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config was not written: %v", err)
	}
	if len(cfg.Checks) == 0 {
		t.Error("default config has no checks")
	}
	if cfg.Policy.InitialWarnings != 3 || cfg.Policy.CooldownDays != 30 {
		t.Errorf("default policy = %+v, want {3 30}", cfg.Policy)
	}
	if cfg.CacheFile == "" {
		t.Error("cache file path not hydrated")
	}
	if cfg.HistoryFile == "" {
		t.Error("history file path not hydrated")
	}
}

func TestLoadHydratesSparseConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
checks:
  - key: base
    title: Base install
    message: base files missing
    files:
      - path: textures/a.ctxr
        require: true
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Policy.InitialWarnings != 3 || cfg.Policy.CooldownDays != 30 {
		t.Errorf("policy = %+v, want defaults {3 30}", cfg.Policy)
	}
	if !cfg.HasCheck("base") {
		t.Error("configured check not loaded")
	}
}

// Explicit zero cooldown is a meaningful policy (never remind after the
// initial phase) and must survive hydration.
func TestLoadKeepsExplicitZeroCooldown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
policy:
  initial_warnings: 3
  cooldown_days: 0
checks:
  - key: base
    files:
      - path: a.ctxr
        require: true
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Policy.CooldownDays != 0 {
		t.Errorf("cooldown_days = %d, want 0 preserved", cfg.Policy.CooldownDays)
	}
	if cfg.Policy.InitialWarnings != 3 {
		t.Errorf("initial_warnings = %d, want 3", cfg.Policy.InitialWarnings)
	}
}

// An explicit all-zero policy disables warnings entirely and must not be
// replaced by the defaults.
func TestLoadKeepsExplicitNeverWarnPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
policy:
  initial_warnings: 0
  cooldown_days: 0
checks:
  - key: base
    files:
      - path: a.ctxr
        require: true
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Policy.InitialWarnings != 0 || cfg.Policy.CooldownDays != 0 {
		t.Errorf("policy = %+v, want explicit zeros preserved", cfg.Policy)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed yaml", raw: "checks: ["},
		{
			name: "duplicate keys",
			raw: `
checks:
  - key: base
    files: [{path: a, require: true}]
  - key: base
    files: [{path: b, require: true}]
`,
		},
		{
			name: "bad digest",
			raw: `
checks:
  - key: base
    files: [{path: a, expect_sha1: nope}]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.raw), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := config.NewFileLoader(path).Load(context.Background()); err == nil {
				t.Error("expected error but got none")
			}
		})
	}
}
