package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "daily",
	Short: "Calendar-first site generator for daily notes",
	Long: `Daily turns a folder of dated markdown notes into a static site built
around a month calendar. Days with notes link to their articles, and a
local dev server rebuilds the site live while you write.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "daily.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
