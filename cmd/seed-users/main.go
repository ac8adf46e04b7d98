package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backup-toolkit/internal/config"
	"github.com/backup-toolkit/internal/seed"
	"github.com/backup-toolkit/pkg/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "seed-users",
	Short: "Create fake user accounts through the create-account endpoint",
	Long: `Posts one generated user per index (user{N}@gmail.com) to the
create-account endpoint, one request at a time. Failed records are printed
and the run continues.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("endpoint", "", "create-account URL (env SEED_ENDPOINT)")
	flags.Int("from", 0, "first index, inclusive (env SEED_FROM)")
	flags.Int("to", 0, "last index, inclusive (env SEED_TO)")
	flags.String("password", "", "password for every account (env SEED_PASSWORD)")
	flags.String("email-format", "", "email format with one %d (env SEED_EMAIL_FORMAT)")
	flags.Duration("timeout", 0, "per-request timeout, 0 for none (env SEED_TIMEOUT)")
	flags.Uint64("random-seed", 0, "seed for fake data, 0 for random (env SEED_RANDOM_SEED)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("log-format", "", "log format: pretty or json (env LOG_FORMAT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.New("seed-users", cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := seed.NewRunner(
		seed.NewGenerator(cfg.Seed),
		seed.NewClient(cfg.Seed.Endpoint, cfg.Seed.Timeout),
		cfg.Seed.From,
		cfg.Seed.To,
		cmd.OutOrStdout(),
		log,
	)

	summary, err := runner.Run(ctx)
	fmt.Fprintf(cmd.OutOrStdout(), "Done: %d created, %d failed\n", summary.Created, summary.Failed)
	return err
}
