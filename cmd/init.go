package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/huyixi/Daily/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up a daily site with an interactive wizard",
	Long:  `Runs an interactive wizard that writes a daily.yml config file, and drops a starter note into the notes directory when it is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard()
		if err != nil {
			return err
		}
		return writeStarterNote(cfg)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// writeStarterNote creates the notes directory and a first note for
// today, unless notes already exist there.
func writeStarterNote(cfg *config.Config) error {
	if err := os.MkdirAll(cfg.ContentDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", cfg.ContentDir, err)
	}

	entries, err := os.ReadDir(cfg.ContentDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", cfg.ContentDir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".md") {
			return nil
		}
	}

	day := time.Now().Format("2006-01-02")
	path := filepath.Join(cfg.ContentDir, day+"-welcome.md")
	note := fmt.Sprintf(`---
title: Welcome
date: %s
---

# Welcome

This is your first daily note. Run `+"`daily serve`"+` to see it on the
calendar, or `+"`daily build`"+` to write the static site.
`, day)

	if err := os.WriteFile(path, []byte(note), 0644); err != nil {
		return fmt.Errorf("writing starter note: %w", err)
	}
	fmt.Printf("Created a starter note at %s\n", path)
	return nil
}
