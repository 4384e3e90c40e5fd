package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/huyixi/Daily/internal/calendar"
	"github.com/huyixi/Daily/internal/config"
	"github.com/huyixi/Daily/internal/content"
	"github.com/huyixi/Daily/internal/progress"
	"github.com/huyixi/Daily/internal/server"
	"github.com/huyixi/Daily/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally and rebuild on changes",
	Long:  `Starts a local dev server that renders the calendar on the fly, watches the notes directory and the config, and live-reloads open pages when anything changes.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the browser after start")
	serveCmd.Flags().Bool("drafts", false, "include draft notes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		cfg.Server.Open = true
	}
	drafts, _ := cmd.Flags().GetBool("drafts")

	scheme, loc, err := resolveTheme(cfg)
	if err != nil {
		return err
	}
	renderer, err := site.NewRenderer(cfg.Title, loc)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	// Drafts are never written to the cache, so sharing it with builds
	// is safe even when --drafts is set.
	cache, err := openStore(cfg)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	srv := server.New(server.Config{
		Port: cfg.Server.Port,
		Open: cfg.Server.Open,
	}, renderer, scheme, siteDefaults(cfg), cfg.Calendar.MinMonth, cfg.Calendar.MaxMonth)

	load := func(reporter progress.Reporter) error {
		pipeline := &content.Pipeline{
			ContentDir:    cfg.ContentDir,
			Include:       cfg.Include,
			Exclude:       cfg.Exclude,
			IncludeDrafts: drafts,
			Cache:         cache,
			Reporter:      reporter,
		}
		notes, err := pipeline.Load(ctx)
		if err != nil {
			return err
		}
		ix := calendar.BuildIndex(content.PagesByDay(notes))
		return srv.SetContent(ix, site.BuildSearchIndex(notes))
	}

	if err := load(progress.NewReporter()); err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	// Rebuild after note or config changes. The mutex keeps overlapping
	// debounce timers from racing on the shared config.
	var rebuildMu sync.Mutex
	rebuild := func() {
		rebuildMu.Lock()
		defer rebuildMu.Unlock()

		if fresh, err := config.Load(cfgFile); err != nil {
			log.Printf("serve: reloading config: %v", err)
		} else if err := fresh.Validate(); err != nil {
			log.Printf("serve: ignoring invalid config change: %v", err)
		} else {
			freshScheme, freshLoc, err := resolveTheme(fresh)
			if err != nil {
				log.Printf("serve: ignoring config change: %v", err)
			} else if freshRenderer, err := site.NewRenderer(fresh.Title, freshLoc); err != nil {
				log.Printf("serve: ignoring config change: %v", err)
			} else {
				if fresh.ContentDir != cfg.ContentDir {
					log.Printf("serve: content_dir changed to %s; restart to watch the new directory", fresh.ContentDir)
				}
				srv.Configure(freshRenderer, freshScheme, siteDefaults(fresh),
					fresh.Calendar.MinMonth, fresh.Calendar.MaxMonth)
				*cfg = *fresh
			}
		}

		if err := load(progress.Silent{}); err != nil {
			log.Printf("serve: rebuilding: %v", err)
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		paths := []string{cfg.ContentDir}
		if _, err := os.Stat(cfgFile); err == nil {
			paths = append(paths, cfgFile)
		}
		err := server.Watch(watchCtx, paths, 500*time.Millisecond, rebuild)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("serve: watcher stopped: %v", err)
		}
	}()

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("dev server: %w", err)
	}
	return nil
}
