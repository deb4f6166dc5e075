package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/flexrun/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web presenter",
	Long: `Start the local web presenter serving the tester session pages and the
creator pages.

Examples:
  flexrun serve              # Start on default port 8080
  flexrun serve --port 3000  # Start on port 3000`,
	RunE: runServe,
}

var servePort int

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (defaults to FLEXRUN_SERVE_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d, cleanup, err := wire(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	port := servePort
	if port == 0 {
		port = d.cfg.ServePort
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	server := web.NewServer(d.service, d.client, d.logger, port)
	return server.Start(ctx)
}
