package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/backup-toolkit/internal/backup"
	"github.com/backup-toolkit/internal/config"
	"github.com/backup-toolkit/internal/editor"
	"github.com/backup-toolkit/pkg/logger"
	"github.com/spf13/cobra"
)

var latestDir string

var rootCmd = &cobra.Command{
	Use:   "backup-editor",
	Short: "Interactive console editor for a backup JSON document",
	Long: `Loads the backup document and shows a numbered menu to list and edit
news and products, renumber ids and regenerate permission slugs.
Changes are written back only when the operator picks save-and-exit.`,
	SilenceUsage: true,
	RunE:         runEditor,
}

func init() {
	flags := rootCmd.Flags()
	flags.String("file", "", "backup document to edit (env BACKUP_FILE)")
	flags.Bool("keep-previous", false, "copy the old file to <file>.bak before saving (env BACKUP_KEEP_PREVIOUS)")
	flags.StringVar(&latestDir, "latest", "", "open the newest backup_*.json in this directory")
	flags.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	flags.String("log-format", "", "log format: pretty or json (env LOG_FORMAT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runEditor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.New("backup-editor", cfg.Log)

	path := cfg.Backup.File
	if latestDir != "" {
		if path, err = backup.Latest(latestDir); err != nil {
			log.Error().Err(err).Str("dir", latestDir).Msg("No backup document found")
			return err
		}
	}

	store := backup.NewStore(path, cfg.Backup.KeepPrevious, log)
	doc, err := store.Load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load backup document")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session := editor.NewSession(doc, store, cmd.InOrStdin(), cmd.OutOrStdout(), log)
	if err := session.Run(ctx); err != nil {
		log.Warn().Err(err).Msg("Editor exited without saving")
		return err
	}
	return nil
}
