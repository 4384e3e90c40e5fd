package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/content"
	"github.com/huyixi/Daily/internal/progress"
	"github.com/huyixi/Daily/internal/site"
	"github.com/huyixi/Daily/internal/store"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the static site from your notes",
	Long:  `Renders every note, assembles the month calendar, and writes the static site for the default view into the output directory.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "output directory (overrides config)")
	buildCmd.Flags().Bool("drafts", false, "include draft notes")
	buildCmd.Flags().Bool("no-cache", false, "render everything fresh, bypassing the cache")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		cfg.OutputDir = output
	}
	drafts, _ := cmd.Flags().GetBool("drafts")
	noCache, _ := cmd.Flags().GetBool("no-cache")

	scheme, loc, err := resolveTheme(cfg)
	if err != nil {
		return err
	}

	var cache *store.Store
	if !noCache {
		cache, err = openStore(cfg)
		if err != nil {
			return err
		}
		if cache != nil {
			defer cache.Close()
		}
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning notes in %s...\n", cfg.ContentDir)
	}

	pipeline := &content.Pipeline{
		ContentDir:    cfg.ContentDir,
		Include:       cfg.Include,
		Exclude:       cfg.Exclude,
		IncludeDrafts: drafts,
		Cache:         cache,
		Reporter:      progress.NewReporter(),
	}
	notes, err := pipeline.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	if len(notes) == 0 {
		fmt.Println("No dated notes found. Add markdown files with a date and build again.")
		return nil
	}

	ix := calendar.BuildIndex(content.PagesByDay(notes))
	bounds := site.DataBounds(ix, cfg.Calendar.MinMonth, cfg.Calendar.MaxMonth)

	renderer, err := site.NewRenderer(cfg.Title, loc)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	renderer.BaseURL = cfg.BaseURL

	gen := &site.Generator{
		OutputDir: cfg.OutputDir,
		Scheme:    scheme,
		Renderer:  renderer,
	}
	files, err := gen.Generate(ix, bounds, siteDefaults(cfg), site.BuildSearchIndex(notes), time.Now())
	if err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	days := 0
	for _, entry := range ix {
		days += len(entry.Days)
	}

	if cache != nil {
		rec := store.BuildRecord{
			StartedAt:  start,
			FinishedAt: time.Now(),
			Notes:      len(notes),
			Days:       days,
			OutputDir:  cfg.OutputDir,
		}
		if _, err := cache.RecordBuild(ctx, rec); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not record build: %v\n", err)
		}
	}

	fmt.Println()
	fmt.Println("Build complete!")
	fmt.Printf("  Notes rendered:  %d\n", len(notes))
	fmt.Printf("  Days with notes: %d\n", days)
	fmt.Printf("  Months:          %d\n", len(ix))
	fmt.Printf("  Files written:   %d\n", files)
	fmt.Printf("  Duration:        %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Output:          %s\n", cfg.OutputDir)

	return nil
}
