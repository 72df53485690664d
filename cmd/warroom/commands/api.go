package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/minglun/v32/backend/internal/api"
	"github.com/minglun/v32/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the REST API server",
	Long: `Starts the REST API server.

Endpoints:
  GET    /health                - Health check
  GET    /api/market/regime     - Benchmark regime
  GET    /api/scan/{pool}       - Scan a watchlist pool
  GET    /api/holdings          - List positions
  POST   /api/holdings          - Add a position
  DELETE /api/holdings/{id}     - Delete a position
  GET    /api/holdings/report   - Holdings advisory report

Example:
  go run ./cmd/warroom api
  go run ./cmd/warroom api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== V32 Warroom API Server ===")

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	marketHandler := handlers.NewMarketHandler(d.marketService, d.log)
	scanHandler := handlers.NewScanHandler(d.scanner, d.cfg, d.log)
	holdingsHandler := handlers.NewHoldingsHandler(d.holdingsRepo, d.evaluator, d.log)

	router := api.NewRouter(marketHandler, scanHandler, holdingsHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("Failed to start server")
		}
	}()

	d.log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", d.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	d.log.Info("Server stopped")
	return nil
}
