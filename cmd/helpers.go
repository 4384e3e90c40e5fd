package cmd

import (
	"fmt"
	"strings"

	"github.com/huyixi/Daily/internal/config"
	"github.com/huyixi/Daily/internal/site"
	"github.com/huyixi/Daily/internal/store"
	"github.com/huyixi/Daily/internal/theme"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `daily init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveTheme looks up the configured scheme and locale in the catalog
// and applies any style overrides from the config.
func resolveTheme(cfg *config.Config) (theme.Scheme, theme.Locale, error) {
	catalog, err := theme.Load()
	if err != nil {
		return theme.Scheme{}, theme.Locale{}, fmt.Errorf("loading themes: %w", err)
	}

	scheme, ok := catalog.Scheme(cfg.Scheme)
	if !ok {
		return theme.Scheme{}, theme.Locale{}, fmt.Errorf("unknown scheme %q (available: %s)",
			cfg.Scheme, strings.Join(catalog.SchemeNames(), ", "))
	}
	loc, ok := catalog.Locale(cfg.Locale)
	if !ok {
		return theme.Scheme{}, theme.Locale{}, fmt.Errorf("unknown locale %q (available: %s)",
			cfg.Locale, strings.Join(catalog.LocaleNames(), ", "))
	}

	if len(cfg.Styles) > 0 {
		scheme, err = scheme.With(cfg.Styles)
		if err != nil {
			return theme.Scheme{}, theme.Locale{}, fmt.Errorf("applying style overrides: %w", err)
		}
	}

	return scheme, loc, nil
}

// siteDefaults maps the calendar config onto the resolver's defaults.
func siteDefaults(cfg *config.Config) site.Defaults {
	return site.Defaults{
		Month: cfg.Calendar.DefaultMonth,
		Day:   cfg.Calendar.DefaultDay,
	}
}

// openStore opens the render cache when it is enabled. A nil store
// means caching is off.
func openStore(cfg *config.Config) (*store.Store, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	st, err := store.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("opening cache at %s: %w", cfg.Cache.Path, err)
	}
	return st, nil
}
