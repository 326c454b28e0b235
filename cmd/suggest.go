package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest [query...]",
	Short: "Autocomplete lookup over article titles",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		suggestions, err := appInstance.SearchService.QuickSuggest(cmd.Context(), query, suggestLimit)
		if err != nil {
			return fmt.Errorf("suggest failed: %w", err)
		}

		if len(suggestions) == 0 {
			fmt.Println("No suggestions.")
			return nil
		}

		dim := color.New(color.Faint)
		for _, s := range suggestions {
			fmt.Println(s.Title)
			if s.PublishedAt != nil {
				dim.Printf("  %s  %s\n", s.Slug, s.PublishedAt.Format("2006-01-02"))
			} else {
				dim.Printf("  %s\n", s.Slug)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(suggestCmd)

	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "l", 5, "Maximum number of suggestions")
}
