package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/huyixi/Daily/internal/theme"
)

// contentDirCandidates are directory names checked when guessing where
// the notes live.
var contentDirCandidates = []string{"content", "notes", "diary", "journal"}

// detectContentDir returns the first candidate directory that exists
// under root, or "content" when none does.
func detectContentDir(root string) string {
	for _, dir := range contentDirCandidates {
		if info, err := os.Stat(filepath.Join(root, dir)); err == nil && info.IsDir() {
			return dir
		}
	}
	return "content"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to daily.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to daily! Let's set up your site.")
	fmt.Println()

	catalog, err := theme.Load()
	if err != nil {
		return nil, fmt.Errorf("loading themes: %w", err)
	}

	cfg := DefaultConfig()

	// 1. Site title.
	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Title = title

	// 2. Notes directory.
	contentPrompt := promptui.Prompt{
		Label:   "Notes directory",
		Default: detectContentDir("."),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("notes directory: %w", err)
	}
	cfg.ContentDir = contentDir

	// 3. Color scheme.
	schemePrompt := promptui.Select{
		Label: "Color scheme",
		Items: catalog.SchemeNames(),
	}
	_, scheme, err := schemePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("scheme selection: %w", err)
	}
	cfg.Scheme = scheme

	// 4. Locale.
	localePrompt := promptui.Select{
		Label: "Locale",
		Items: catalog.LocaleNames(),
	}
	_, locale, err := localePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("locale selection: %w", err)
	}
	cfg.Locale = locale

	// 5. Dev server port.
	portPrompt := promptui.Prompt{
		Label:   "Dev server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			p, err := strconv.Atoi(s)
			if err != nil || p < 1 || p > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	// Save to daily.yml.
	configPath := "daily.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
