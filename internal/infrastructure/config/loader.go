package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/afevis/modcheck/assets"
	"github.com/afevis/modcheck/internal/domain"
	"github.com/afevis/modcheck/internal/ports"
)

// FileLoader loads YAML configuration from ~/.modcheck/config.yaml
// (overridable via MODCHECK_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider. A missing file is seeded with the
// embedded default configuration, which carries the known-bad mod database.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			data = assets.DefaultConfigYAML
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return domain.Config{}, err
			}
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	// An explicit all-zero policy means "never warn" and must not be mistaken
	// for an absent block, so presence is probed separately.
	var probe struct {
		Policy *domain.PolicySettings `yaml:"policy"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return domain.Config{}, err
	}

	cfg = hydrateDefaults(cfg, probe.Policy != nil)
	if err := cfg.ValidateConsistency(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return expandPath(l.overridePath)
	}
	if custom := os.Getenv("MODCHECK_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".modcheck", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func hydrateDefaults(cfg domain.Config, policySet bool) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if !policySet {
		cfg.Policy = domain.PolicySettings{InitialWarnings: 3, CooldownDays: 30}
	}
	if cfg.CacheFile == "" {
		cfg.CacheFile = filepath.Join(userHomeDir(), ".modcheck", "warnings.bin")
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = filepath.Join(userHomeDir(), ".modcheck", "history.db")
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
