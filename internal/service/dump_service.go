package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/backup-toolkit/internal/backup"
	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DumpFormatVersion is written to the version key of every dumped document
const DumpFormatVersion = "1.0"

// dumpService is the concrete implementation of DumpService
type dumpService struct {
	repos *repository.Repositories
	now   func() time.Time
	log   zerolog.Logger
}

// NewDumpService creates a new DumpService
func NewDumpService(repos *repository.Repositories, log zerolog.Logger) DumpService {
	return &dumpService{
		repos: repos,
		now:   time.Now,
		log:   log.With().Str("service", "dump").Logger(),
	}
}

// Dump streams the three tables into a new document stamped with the
// current time and format version
func (s *dumpService) Dump(ctx context.Context) (*models.Document, []*models.SyncReport, error) {
	return s.dump(ctx, s.now())
}

// DumpToDir dumps the database into a new backup_<timestamp>.json in dir
func (s *dumpService) DumpToDir(ctx context.Context, dir string) (*DumpResult, error) {
	now := s.now()
	doc, reports, err := s.dump(ctx, now)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, backup.FileName(now))
	if err := backup.NewStore(path, false, s.log).Save(doc); err != nil {
		return nil, err
	}

	return &DumpResult{Path: path, Reports: reports}, nil
}

func (s *dumpService) dump(ctx context.Context, now time.Time) (*models.Document, []*models.SyncReport, error) {
	runID := uuid.New().String()
	doc := models.NewDocument()
	doc.News = []models.Record{}
	doc.Products = []models.Record{}
	doc.Permissions = []models.Record{}

	newsReport := newReport(runID, models.SyncDump, models.ListNews)
	err := dumpList(ctx, newsReport, s.repos.News, func(n *models.News) {
		doc.News = append(doc.News, n.Record())
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dump news: %w", err)
	}

	productReport := newReport(runID, models.SyncDump, models.ListProducts)
	err = dumpList(ctx, productReport, s.repos.Product, func(p *models.Product) {
		doc.Products = append(doc.Products, p.Record())
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dump products: %w", err)
	}

	permissionReport := newReport(runID, models.SyncDump, models.ListPermissions)
	err = dumpList(ctx, permissionReport, s.repos.Permission, func(p *models.Permission) {
		doc.Permissions = append(doc.Permissions, p.Record())
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to dump permissions: %w", err)
	}

	stamp, _ := json.Marshal(now.UTC().Format("2006-01-02T15:04:05.000Z"))
	version, _ := json.Marshal(DumpFormatVersion)
	doc.Extra["timestamp"] = stamp
	doc.Extra["version"] = version

	reports := []*models.SyncReport{newsReport, productReport, permissionReport}
	for _, r := range reports {
		s.log.Info().
			Str("run_id", runID).
			Str("resource", r.Resource).
			Int("total", r.TotalRecords).
			Int64("duration_ms", r.DurationMs).
			Msg("Dump completed")
	}

	return doc, reports, nil
}

func dumpList[T any](ctx context.Context, report *models.SyncReport, repo repository.RecordRepository[T], add func(*T)) error {
	err := repo.StreamAll(ctx, func(record *T) error {
		add(record)
		report.TotalRecords++
		report.SuccessfulCount++
		return nil
	})
	report.Finish()
	return err
}
