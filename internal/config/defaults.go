package config

// DefaultExcludes are glob patterns excluded from the content scan by
// default. Hidden directories are skipped by the scanner regardless;
// these cover the common non-note folders inside a notes vault.
var DefaultExcludes = []string{
	"drafts/**",
	"templates/**",
	"attachments/**",
	"node_modules/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:      "Daily",
		ContentDir: "content",
		OutputDir:  "public",
		Scheme:     "paper",
		Locale:     "en",
		Include:    []string{"**/*.md"},
		Exclude:    DefaultExcludes,
		Calendar: CalendarConfig{
			DefaultMonth: "latest",
			DefaultDay:   "latest",
		},
		Server: ServerConfig{
			Port: 8030,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    ".daily/cache.db",
		},
	}
}
