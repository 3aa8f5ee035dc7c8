package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rnwolfe/streakmap/internal/report"
	"github.com/rnwolfe/streakmap/internal/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the heatmap product over HTTP",
	Long: `Starts an HTTP server for a browser-side heatmap renderer.

  GET /api/heatmap   heatmap_data, streaks and totals (recomputed per request)
  GET /api/streak    current and longest streak only
  GET /healthz       liveness

Query parameters rollover, tz, count (first|all) and fill override the
configuration for one request.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default serve.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	// Fail on a bad rollover or timezone now instead of on every request.
	if _, err := sess.settings(report.Overrides{}); err != nil {
		return err
	}

	addr := sess.cfg.Serve.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(sess.compute, sess.cfg.Serve.AllowOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Printf("streakmap serving on http://%s", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-quit:
	}

	log.Println("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
