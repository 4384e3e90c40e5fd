package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "Show recent build history",
	Long:  `Lists the builds recorded in the cache, newest first.`,
	RunE:  runBuilds,
}

func init() {
	buildsCmd.Flags().Int("limit", 10, "number of builds to show")
	rootCmd.AddCommand(buildsCmd)
}

func runBuilds(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Cache.Enabled {
		return fmt.Errorf("build history needs the cache enabled in %s", cfgFile)
	}

	cache, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer cache.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := cache.RecentBuilds(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("listing builds: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No builds recorded yet. Run `daily build` first.")
		return nil
	}

	fmt.Printf("%-20s %7s %6s %10s  %s\n", "STARTED", "NOTES", "DAYS", "DURATION", "OUTPUT")
	for _, rec := range records {
		duration := rec.FinishedAt.Sub(rec.StartedAt).Round(time.Millisecond)
		fmt.Printf("%-20s %7d %6d %10s  %s\n",
			rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
			rec.Notes, rec.Days, duration, rec.OutputDir)
	}
	return nil
}
