package service

import (
	"context"

	"github.com/backup-toolkit/internal/config"
	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/repository"
	"github.com/rs/zerolog"
)

// AccountService defines the interface for account registration
type AccountService interface {
	CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error)
	Count(ctx context.Context) (int, error)
}

// RestoreOptions controls a restore run
type RestoreOptions struct {
	// Reset deletes existing rows from every table before inserting
	Reset bool
}

// RestoreService defines the interface for loading a backup document into the database
type RestoreService interface {
	Restore(ctx context.Context, doc *models.Document, opts RestoreOptions) ([]*models.SyncReport, error)
}

// DumpResult describes a finished dump
type DumpResult struct {
	Path    string
	Reports []*models.SyncReport
}

// DumpService defines the interface for writing the database out as a backup document
type DumpService interface {
	Dump(ctx context.Context) (*models.Document, []*models.SyncReport, error)
	DumpToDir(ctx context.Context, dir string) (*DumpResult, error)
}

// Services holds the database-backed services
type Services struct {
	Restore RestoreService
	Dump    DumpService
}

// NewServices creates the sync services
func NewServices(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Restore: NewRestoreService(repos, cfg, log),
		Dump:    NewDumpService(repos, log),
	}
}
