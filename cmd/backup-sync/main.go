package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/backup-toolkit/internal/backup"
	"github.com/backup-toolkit/internal/config"
	"github.com/backup-toolkit/internal/database"
	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/repository"
	"github.com/backup-toolkit/internal/service"
	"github.com/backup-toolkit/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var resetTables bool

var rootCmd = &cobra.Command{
	Use:          "backup-sync",
	Short:        "Move backup documents in and out of PostgreSQL",
	SilenceUsage: true,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back the backup table migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(ctx context.Context, cfg *config.Config, db *database.DB, _ zerolog.Logger) error {
			return db.RunMigrations(cfg.Sync.MigrationsPath)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(ctx context.Context, cfg *config.Config, db *database.DB, _ zerolog.Logger) error {
			return db.MigrateDown(cfg.Sync.MigrationsPath)
		})
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write news, products and permissions to a new backup_<timestamp>.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDatabase(cmd, func(ctx context.Context, cfg *config.Config, db *database.DB, log zerolog.Logger) error {
			services := service.NewServices(repository.New(db), cfg, log)
			result, err := services.Dump.DumpToDir(ctx, cfg.Sync.OutputDir)
			if err != nil {
				return err
			}
			printReports(cmd.OutOrStdout(), result.Reports)
			fmt.Fprintf(cmd.OutOrStdout(), "Written %s\n", result.Path)
			return nil
		})
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Validate a backup document and insert its lists into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDatabase(cmd, func(ctx context.Context, cfg *config.Config, db *database.DB, log zerolog.Logger) error {
			doc, err := backup.NewStore(args[0], false, log).Load()
			if err != nil {
				return err
			}
			services := service.NewServices(repository.New(db), cfg, log)
			reports, err := services.Restore.Restore(ctx, doc, service.RestoreOptions{Reset: resetTables})
			printReports(cmd.OutOrStdout(), reports)
			return err
		})
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("migrations", "", "migrations directory (env MIGRATIONS_PATH)")
	flags.Int("batch-size", 0, "rows per COPY batch (env SYNC_BATCH_SIZE)")
	flags.String("output-dir", "", "directory for dump files (env SYNC_OUTPUT_DIR)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("log-format", "", "log format: pretty or json (env LOG_FORMAT)")

	restoreCmd.Flags().BoolVar(&resetTables, "reset", false, "delete existing rows before inserting")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd, dumpCmd, restoreCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// withDatabase loads configuration, opens the database and runs fn
func withDatabase(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, db *database.DB, log zerolog.Logger) error) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.New("backup-sync", cfg.Log)

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to database")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, cfg, db, log); err != nil {
		log.Error().Err(err).Str("command", cmd.CommandPath()).Msg("Command failed")
		return err
	}
	return nil
}

func printReports(w io.Writer, reports []*models.SyncReport) {
	for _, r := range reports {
		fmt.Fprintf(w, "%-12s %-8s total=%d ok=%d failed=%d (%dms)\n",
			r.Resource, r.Direction, r.TotalRecords, r.SuccessfulCount, r.FailedCount, r.DurationMs)
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  #%d %s: %s\n", e.Index, e.Field, e.Message)
		}
	}
}
