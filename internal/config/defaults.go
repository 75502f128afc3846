package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			MaxRequestSize: 1 << 20,
		},
		Storage: StorageConfig{
			Path:              "~/.config/strand",
			SQLiteFile:        "strand.db",
			SQLiteJournalMode: "wal",
		},
		Retention: RetentionConfig{
			Days: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
