package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/huyixi/Daily/internal/theme"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the built-in color schemes and locales",
	RunE:  runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)
}

func runThemes(cmd *cobra.Command, args []string) error {
	catalog, err := theme.Load()
	if err != nil {
		return err
	}

	fmt.Println("Color schemes:")
	for _, name := range catalog.SchemeNames() {
		s, _ := catalog.Scheme(name)
		marker := " "
		if name == theme.DefaultScheme {
			marker = "*"
		}
		fmt.Printf("  %s %-8s  background %-8s accent %s\n", marker, name, s.Background, s.Accent)
	}

	now := time.Now()
	fmt.Println()
	fmt.Println("Locales:")
	for _, name := range catalog.LocaleNames() {
		l, _ := catalog.Locale(name)
		marker := " "
		if name == theme.DefaultLocale {
			marker = "*"
		}
		fmt.Printf("  %s %-8s  %s\n", marker, name, l.Title(now.Year(), now.Month()))
	}

	fmt.Println()
	fmt.Println("  * = default")
	return nil
}
