package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/blogloom/internal/server"
	"github.com/KaramelBytes/blogloom/internal/view"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the blog over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Addr
		if serveAddr != "" {
			addr = serveAddr
		}
		if addr == "" {
			addr = "127.0.0.1:8080"
		}
		s := openSite()
		opts := viewOptions()
		// Fail fast on broken templates instead of on the first request.
		if _, err := view.NewController(s, opts); err != nil {
			return err
		}
		logger := log.New(os.Stderr, "", log.LstdFlags)
		srv := server.New(func() (*view.Controller, error) {
			return view.NewController(s, opts)
		}, logger)

		hs := &http.Server{
			Addr:              addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errc := make(chan error, 1)
		go func() {
			logger.Printf("listening on http://%s", addr)
			errc <- hs.ListenAndServe()
		}()

		select {
		case err := <-errc:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}
