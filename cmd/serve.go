// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"devrank/internal/config"
	"devrank/internal/gateway"
	"devrank/internal/server"
	"devrank/internal/usecase"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the search API over HTTP",
	Long: `Starts an HTTP server exposing GET /api/search. The endpoint takes
"users" and "platforms" query parameters and responds with the ranked
results as JSON, or in display form with format=text.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		cfg := config.Load()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.ListenAddr
		}

		factory := gateway.NewFactory(cfg, logger)
		searcher := usecase.NewSearcher(logger)
		srv := server.New(factory, searcher, logger)

		httpServer := &http.Server{
			Addr:         addr,
			Handler:      srv.Handler(),
			ReadTimeout:  cfg.HTTPTimeout,
			WriteTimeout: cfg.HTTPTimeout,
		}

		go func() {
			logger.Infof("listening on %s", addr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
				os.Exit(1)
			}
		}()

		// Block until interrupted, then drain in-flight requests.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Forced shutdown: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (defaults to DEVRANK_LISTEN_ADDR or :8080)")
}
