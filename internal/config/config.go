package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/huyixi/Daily/internal/calendar"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (DAILY_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: DAILY_SCHEME -> scheme, etc.
	if err := k.Load(env.Provider("DAILY_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "DAILY_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values. Scheme
// and locale names are validated against the theme catalog by the
// caller, which has the catalog loaded anyway.
func (c *Config) Validate() error {
	if c.Title == "" {
		return fmt.Errorf("title is required")
	}
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if c.Scheme == "" {
		return fmt.Errorf("scheme is required")
	}
	if c.Locale == "" {
		return fmt.Errorf("locale is required")
	}

	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("base_url %q must be an absolute http(s) URL", c.BaseURL)
		}
	}

	if err := validMonthKey("calendar.min_month", c.Calendar.MinMonth); err != nil {
		return err
	}
	if err := validMonthKey("calendar.max_month", c.Calendar.MaxMonth); err != nil {
		return err
	}
	if c.Calendar.MinMonth != "" && c.Calendar.MaxMonth != "" &&
		calendar.Compare(c.Calendar.MinMonth, c.Calendar.MaxMonth) > 0 {
		return fmt.Errorf("calendar.min_month %q is after calendar.max_month %q",
			c.Calendar.MinMonth, c.Calendar.MaxMonth)
	}
	if m := c.Calendar.DefaultMonth; m != "" && m != "latest" {
		if err := validMonthKey("calendar.default_month", m); err != nil {
			return err
		}
	}
	if d := c.Calendar.DefaultDay; d != "" && d != "latest" {
		if _, err := calendar.ParseDay(d); err != nil {
			return fmt.Errorf("calendar.default_day %q must be an ISO date or \"latest\"", d)
		}
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("cache.path is required when the cache is enabled")
	}

	return nil
}

// validMonthKey checks an optional YYYY-MM config value.
func validMonthKey(field, key string) error {
	if key == "" {
		return nil
	}
	if _, _, ok := calendar.ParseKey(key); !ok {
		return fmt.Errorf("%s %q is not a YYYY-MM month key", field, key)
	}
	return nil
}
