// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the diagnostic core to remain independent of specific
// implementations like the on-disk cache format, the modal prompter, or the
// operating system's install metadata.
package ports

import (
	"context"

	"github.com/afevis/modcheck/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.modcheck/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// FileFingerprintChecker probes the inspected game files. A missing file is
// meaningful input, never an error: Exists simply returns false and
// MatchesDigest does not match.
type FileFingerprintChecker interface {
	Exists(path string) bool
	MatchesDigest(path, expectedHex string) bool
}

// UserPrompter shows a blocking yes/no warning to the user. The native game
// patch uses a modal message box; the prompt holds up startup until answered.
type UserPrompter interface {
	Confirm(message, title string) (bool, error)
}

// LinkOpener launches a remediation URL in the user's browser. Fire and
// forget: failures are not surfaced to the diagnostic subsystem.
type LinkOpener interface {
	Open(url string)
}

// EnvironmentInfo reads install-environment signals used for cache
// invalidation. InstallTimestamp returns the OS install time stringified,
// or the empty string when unreadable. Never an error.
type EnvironmentInfo interface {
	InstallTimestamp() string
}

// WarningCacheStore persists the warning cache. Load fails soft: missing,
// foreign or corrupt files yield an empty cache. Save is best-effort
// write-through; a failed save must never block the current run.
type WarningCacheStore interface {
	Load() domain.WarningCache
	Save(domain.WarningCache) error
	Path() string
	Clear() error
}

// WarningHistoryRepository keeps an audit log of surfaced warnings.
type WarningHistoryRepository interface {
	Record(domain.WarningEvent) error
	Recent(limit int) ([]domain.WarningEvent, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stdout, files, external services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
