package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/jiten/data/dictionary.db"
	}
	ApplySearchDefaults(&cfg.Search)
}

// ApplySearchDefaults sets default values for any zero values in the
// search section. Also used by callers that construct a SearchConfig
// directly (CLI, tests).
func ApplySearchDefaults(cfg *SearchConfig) {
	if cfg.DefaultLimit == 0 {
		cfg.DefaultLimit = 10
	}
	if cfg.MaxLimit == 0 {
		cfg.MaxLimit = 100
	}
	if cfg.MinFuzzyQueryLength == 0 {
		cfg.MinFuzzyQueryLength = 3
	}
	if cfg.MaxFuzzyDistance == 0 {
		cfg.MaxFuzzyDistance = 2
	}
	if cfg.FuzzyPrefixCandidates == 0 {
		cfg.FuzzyPrefixCandidates = 1000
	}
	if cfg.FuzzySuffixCandidates == 0 {
		cfg.FuzzySuffixCandidates = 500
	}
	if cfg.PreviewLength == 0 {
		cfg.PreviewLength = 100
	}
}
