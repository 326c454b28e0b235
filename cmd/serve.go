package cmd

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"newsdesk/internal/apihandlers"
)

var (
	serveAddr string
	servePort string
)

// serveCmd runs the HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the newsdesk HTTP API server",
	Long: `Starts an HTTP server exposing the news search engine: full search,
quick-suggest autocomplete, and a health endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		router := gin.Default() // logger and recovery middleware

		apiHandler := apihandlers.NewAPIHandler(appInstance)

		v1 := router.Group("/api/v1")
		{
			newsGroup := v1.Group("/news")
			{
				newsGroup.GET("/search", apiHandler.SearchNewsHandler)
				newsGroup.GET("/suggest", apiHandler.QuickSearchHandler)
			}
		}

		router.GET("/health", apiHandler.HealthHandler)

		// Flags override the config file when set.
		addr := appInstance.Config.Server.Address
		port := appInstance.Config.Server.Port
		if serveAddr != "" {
			addr = serveAddr
		}
		if servePort != "" {
			port = servePort
		}

		listenAddr := fmt.Sprintf("%s:%s", addr, port)
		log.Infof("Starting newsdesk API server on http://%s", listenAddr)

		if err := router.Run(listenAddr); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to run API server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (e.g., '0.0.0.0' for all interfaces)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on")
}
