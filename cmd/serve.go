package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelezco/redbag-claimer/internal/adapters/webhook"
	"github.com/avelezco/redbag-claimer/internal/observability"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(app *app) *cobra.Command {
	var (
		listenAddr string
		skipWarmUp bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the webhook server that claims incoming codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer observability.FlushSentry()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if !skipWarmUp {
				app.orchestrator.WarmUp(ctx)
			}

			handler := webhook.NewHandler(app.orchestrator, webhook.NewLogNotifier(app.logger), app.logger)
			server := &http.Server{
				Addr:              listenAddr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.ListenAndServe()
			}()
			app.logger.Info(ctx, "webhook server listening", "addr", listenAddr)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("webhook server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			app.logger.Info(context.Background(), "shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown webhook server: %w", err)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&listenAddr, "listen", app.settings.ListenAddr, "Address for the webhook server")
	cmd.Flags().BoolVar(&skipWarmUp, "no-warmup", false, "Skip authenticating the pool before serving")

	return cmd
}
