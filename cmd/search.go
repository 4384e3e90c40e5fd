package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/huyixi/Daily/internal/content"
	"github.com/huyixi/Daily/internal/progress"
	"github.com/huyixi/Daily/internal/site"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search your notes from the terminal",
	Long:  `Fuzzy-searches note days, titles, and summaries, the same way the site's search box does.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum number of results")
	searchCmd.Flags().Bool("drafts", false, "include draft notes")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := args[0]

	limit, _ := cmd.Flags().GetInt("limit")
	drafts, _ := cmd.Flags().GetBool("drafts")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cache, err := openStore(cfg)
	if err != nil {
		return err
	}
	if cache != nil {
		defer cache.Close()
	}

	pipeline := &content.Pipeline{
		ContentDir:    cfg.ContentDir,
		Include:       cfg.Include,
		Exclude:       cfg.Exclude,
		IncludeDrafts: drafts,
		Cache:         cache,
		Reporter:      progress.Silent{},
	}
	notes, err := pipeline.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}

	results := site.Search(site.BuildSearchIndex(notes), query, limit)
	if len(results) == 0 {
		fmt.Println("No matching notes.")
		return nil
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	fmt.Printf("Found %d matching notes:\n\n", len(results))
	for i, r := range results {
		fmt.Printf("  %d. %s  %s\n", i+1, r.Day, r.Title)
		if r.Summary != "" {
			fmt.Printf("     %s\n", r.Summary)
		}
	}
	return nil
}
