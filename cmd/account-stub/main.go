package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/backup-toolkit/internal/api"
	"github.com/backup-toolkit/internal/config"
	"github.com/backup-toolkit/internal/service"
	"github.com/backup-toolkit/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "account-stub",
	Short: "Local create-account endpoint for dry-running the seeder",
	Long: `Serves POST /api/v1/create-account with an in-memory account store,
so seed-users can be exercised without the real backend.`,
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.Flags().String("port", "", "port to listen on (env PORT)")
	rootCmd.Flags().String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	rootCmd.Flags().String("log-format", "", "log format: pretty or json (env LOG_FORMAT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.New("account-stub", cfg.Log)
	log.Info().Msg("Starting account stub server...")

	accounts := service.NewAccountService(log)
	router := api.NewRouter(accounts, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("Server failed")
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	count, _ := accounts.Count(ctx)
	log.Info().Int("accounts", count).Msg("Server exited gracefully")
	return nil
}
