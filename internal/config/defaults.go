package config

// SetDefaults sets default values for all zero-valued fields.
func SetDefaults(cfg *Config) {
	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Journal defaults
	if cfg.Journal.ReportEvery == 0 {
		cfg.Journal.ReportEvery = 1
	}

	// Engine defaults
	if cfg.Engine.MaxStep == 0 {
		cfg.Engine.MaxStep = 100000
	}
}
