package cmd

import (
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"statement-ingestion-service/cmd/statements/config"
	"statement-ingestion-service/internal/api"
	"statement-ingestion-service/internal/parsers"
	"statement-ingestion-service/pkg/logger"
)

var serveListen string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ingestion pipeline over HTTP",
	Long: `Serve exposes the ingestion pipeline as a small HTTP API:

  POST /api/import            multipart statement file upload
  GET  /api/templates         the template registry
  POST /api/templates/detect  match a header row against the registry
  GET  /api/health            liveness check

Example:
  statements serve --listen :8080 --templates-file mybanks.yaml`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", ":8080", "listen address")
	viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func runServe(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry(templatesFile)
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		AppName: "statements " + version,
	})

	handler := api.NewHandler(registry, parsers.NewIngestor())
	handler.RegisterRoutes(app)

	logger.WithComponent("serve").WithFields(logger.Fields{
		"listen":    serveListen,
		"templates": len(registry.Templates()),
	}).Info("Starting ingestion API")

	return app.Listen(serveListen)
}
