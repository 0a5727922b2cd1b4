package domain

// Config mirrors ~/.modcheck/config.yaml.
type Config struct {
	ConfigFormatVersion string `yaml:"config_format_version"`
	// InstallDir is the game installation the checks run against; empty
	// means the process working directory.
	InstallDir string `yaml:"install_dir,omitempty"`
	// CacheFile is where the binary warning cache lives.
	CacheFile string `yaml:"cache_file,omitempty"`
	// HistoryFile is the warning-event audit database.
	HistoryFile string         `yaml:"history_file,omitempty"`
	Policy      PolicySettings `yaml:"policy"`
	// Checks describe the known-bad installations: file paths and hashes
	// per logical condition. Static data, not algorithm.
	Checks []CheckDefinition `yaml:"checks"`
}

// PolicySettings configures the two-phase warning throttle.
type PolicySettings struct {
	InitialWarnings uint32 `yaml:"initial_warnings"`
	// CooldownDays of 0 means no reminders after the initial phase.
	CooldownDays uint32 `yaml:"cooldown_days"`
}

// WarningPolicy converts the settings into the engine's policy value.
func (c *Config) WarningPolicy() WarningPolicy {
	return WarningPolicy{
		InitialWarnings: c.Policy.InitialWarnings,
		CooldownDays:    c.Policy.CooldownDays,
	}
}
