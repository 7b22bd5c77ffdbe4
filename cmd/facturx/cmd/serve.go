package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for Factur-X generation.

The API provides endpoints for:
  - POST /api/v1/generate/xml  - Generate CII XML from invoice records
  - POST /api/v1/generate/pdf  - Generate a merged hybrid PDF (multipart)
  - POST /api/v1/check         - Check record consistency
  - POST /api/v1/inspect       - Inspect a PDF or XML payload
  - GET  /health               - Health check

Examples:
  # Start server on default port
  facturx serve

  # Start on custom port with a fixed profile
  facturx serve --address :8080 --profile basic

  # Start in debug mode
  facturx serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      serverAddr,
		Profile:      model.ParseProfile(profileName),
		CountryCode:  countryCode,
		RunChecks:    runChecks,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
		Logger:       log,
	}

	srv := server.NewServer(config)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	log.Info().Str("address", serverAddr).Str("profile", string(config.Profile)).Msg("starting server")
	return srv.Run()
}
