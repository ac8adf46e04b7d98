package service

import (
	"context"
	"time"

	"github.com/backup-toolkit/internal/config"
	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/repository"
	"github.com/backup-toolkit/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxReportedErrors caps the validation errors kept per report
const maxReportedErrors = 1000

// restoreService is the concrete implementation of RestoreService
type restoreService struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   zerolog.Logger
}

// NewRestoreService creates a new RestoreService
func NewRestoreService(repos *repository.Repositories, cfg *config.Config, log zerolog.Logger) RestoreService {
	return &restoreService{
		repos: repos,
		cfg:   cfg,
		log:   log.With().Str("service", "restore").Logger(),
	}
}

// Restore validates every record of the three lists and batch inserts the
// valid ones. Invalid records are counted and reported, never inserted.
// The returned reports are ordered news, products, permissions.
func (s *restoreService) Restore(ctx context.Context, doc *models.Document, opts RestoreOptions) ([]*models.SyncReport, error) {
	runID := uuid.New().String()
	log := s.log.With().Str("run_id", runID).Logger()

	if opts.Reset {
		if err := s.reset(ctx); err != nil {
			return nil, err
		}
		log.Info().Msg("Existing rows deleted")
	}

	validator := validation.NewValidator()
	batchSize := s.cfg.Sync.BatchSize
	reports := make([]*models.SyncReport, 0, 3)

	newsReport := newReport(runID, models.SyncRestore, models.ListNews)
	reports = append(reports, newsReport)
	err := restoreList(ctx, log, newsReport, doc.News, batchSize, s.repos.News,
		validator.ValidateNews,
		func(r models.Record) *models.News {
			n := models.NewsFromRecord(r)
			validator.AddNewsID(n.ID)
			return n
		})
	if err != nil {
		return reports, err
	}

	productReport := newReport(runID, models.SyncRestore, models.ListProducts)
	reports = append(reports, productReport)
	err = restoreList(ctx, log, productReport, doc.Products, batchSize, s.repos.Product,
		validator.ValidateProduct,
		func(r models.Record) *models.Product {
			p := models.ProductFromRecord(r)
			validator.AddProductID(p.ID)
			return p
		})
	if err != nil {
		return reports, err
	}

	permissionReport := newReport(runID, models.SyncRestore, models.ListPermissions)
	reports = append(reports, permissionReport)
	err = restoreList(ctx, log, permissionReport, doc.Permissions, batchSize, s.repos.Permission,
		validator.ValidatePermission,
		func(r models.Record) *models.Permission {
			p := models.PermissionFromRecord(r)
			validator.AddPermission(p.ID, p.Slug)
			return p
		})
	if err != nil {
		return reports, err
	}

	return reports, nil
}

func (s *restoreService) reset(ctx context.Context) error {
	if err := s.repos.Permission.DeleteAll(ctx); err != nil {
		return err
	}
	if err := s.repos.Product.DeleteAll(ctx); err != nil {
		return err
	}
	return s.repos.News.DeleteAll(ctx)
}

// restoreList runs one list through validation and batched inserts. A failed
// batch counts every record in it as failed and the run continues.
func restoreList[T any](
	ctx context.Context,
	log zerolog.Logger,
	report *models.SyncReport,
	list []models.Record,
	batchSize int,
	repo repository.RecordRepository[T],
	validate func(models.Record) []validation.ValidationError,
	convert func(models.Record) *T,
) error {
	log = log.With().Str("resource", report.Resource).Logger()
	batch := make([]*T, 0, batchSize)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		inserted, err := repo.BatchInsert(ctx, batch)
		if err != nil {
			log.Error().Err(err).Int("batch_size", len(batch)).Msg("Batch insert failed")
			report.FailedCount += len(batch)
		} else {
			report.SuccessfulCount += inserted
			report.FailedCount += len(batch) - inserted
		}
		batch = batch[:0]

		log.Debug().
			Int("successful", report.SuccessfulCount).
			Int("failed", report.FailedCount).
			Msg("Batch processed")
	}

	for i, r := range list {
		if err := ctx.Err(); err != nil {
			report.Finish()
			return err
		}
		report.TotalRecords++

		if errs := validate(r); len(errs) > 0 {
			report.FailedCount++
			for _, e := range errs {
				if len(report.Errors) >= maxReportedErrors {
					break
				}
				report.Errors = append(report.Errors, models.ValidationError{
					Index:   i + 1,
					Field:   e.Field,
					Message: e.Message,
					Value:   e.Value,
				})
			}
			continue
		}

		batch = append(batch, convert(r))
		if len(batch) >= batchSize {
			flush()
		}
	}
	flush()

	report.Finish()

	log.Info().
		Int("total", report.TotalRecords).
		Int("successful", report.SuccessfulCount).
		Int("failed", report.FailedCount).
		Int64("duration_ms", report.DurationMs).
		Float64("rows_per_sec", report.RowsPerSec).
		Msg("Restore completed")

	return nil
}

func newReport(runID string, direction models.SyncDirection, resource string) *models.SyncReport {
	return &models.SyncReport{
		RunID:     runID,
		Direction: direction,
		Resource:  resource,
		StartedAt: time.Now(),
	}
}
