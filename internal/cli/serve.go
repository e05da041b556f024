package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Dhoini/invoice-dashboard/internal/app"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			log.Infow("Invoice dashboard starting up...", "env", cfg.App.Env)

			// Устанавливаем режим Gin в зависимости от окружения
			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			application, err := app.New(ctx, cfg, log)
			if err != nil {
				log.Errorw("Failed to initialize application", "error", err)
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					log.Errorw("Error releasing resources", "error", err)
				}
			}()

			// Запускаем HTTP сервер в горутине
			serverErr := make(chan error, 1)
			go func() {
				serverErr <- application.Server.Start()
			}()

			// --- Graceful Shutdown ---
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case <-quit:
				log.Infow("Shutdown signal received")
			case err := <-serverErr:
				if err != nil {
					log.Errorw("HTTP server stopped", "error", err)
					return err
				}
				return nil
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
			defer shutdownCancel()

			if err := application.Server.Shutdown(shutdownCtx); err != nil {
				log.Errorw("HTTP server shutdown error", "error", err)
				return err
			}
			log.Infow("HTTP server gracefully stopped")
			return nil
		},
	}
}
