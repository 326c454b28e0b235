package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"newsdesk/internal/app"
	"newsdesk/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "newsdesk",
	Short: "Newsdesk search service",
	Long:  `Newsdesk is the search service of a news-publishing platform: full-text article search with relevance scoring, autocomplete suggestions, and search analytics.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
	// PersistentPreRunE runs before any subcommand's RunE.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		appInstance, err := app.NewApp(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		ctx := context.WithValue(cmd.Context(), appKey, appInstance)
		cmd.SetContext(ctx)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// contextKey avoids collisions with other context values.
type contextKey string

const appKey contextKey = "app"

// GetAppFromContext retrieves the app instance stored by PersistentPreRunE.
func GetAppFromContext(ctx context.Context) (*app.App, error) {
	appInstance, ok := ctx.Value(appKey).(*app.App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application instance not found in context")
	}
	return appInstance, nil
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check database connectivity and other diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		fmt.Println("Checking database connectivity...")

		if err := appInstance.ArticleStore.Ping(ctx); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}

		fmt.Println("Database connection successful.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
