package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/skateshare"
)

func serveCommand(cfg *skateshare.SiteConfig) *cobra.Command {
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.AdminPassword == "" {
				return errors.New("ADMIN_PASSWORD environment variable is required")
			}
			if cfg.SessionSecret == "" {
				return errors.New("ADMIN_SESSION_SECRET environment variable is required")
			}

			app := skateshare.New(*cfg, skateshare.WithStaticDir(staticDir))
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() { errCh <- app.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			app.Echo.Logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return app.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().StringVar(&staticDir, "static", "public", "directory of static assets served under /public")
	return cmd
}
