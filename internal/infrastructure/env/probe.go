// Package env reads install-environment signals used to detect that the
// cache belongs to a different machine or installation.
package env

import "github.com/afevis/modcheck/internal/ports"

// Probe implements ports.EnvironmentInfo against the host OS.
type Probe struct{}

// New builds the environment probe.
func New() *Probe {
	return &Probe{}
}

// InstallTimestamp returns the OS install time as a decimal string, or the
// empty string when the platform source is unreadable. An empty token only
// weakens the environment-change signal; it never blocks the checks.
func (Probe) InstallTimestamp() string {
	return installTimestamp()
}

var _ ports.EnvironmentInfo = (*Probe)(nil)
