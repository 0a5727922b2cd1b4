package assets

import (
	_ "embed"
)

// DefaultConfigYAML contains the embedded default configuration, including
// the known-bad mod installation database.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
