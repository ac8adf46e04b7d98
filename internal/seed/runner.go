package seed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/backup-toolkit/internal/models"
	"github.com/backup-toolkit/internal/validation"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccountCreator sends one account to the backend
type AccountCreator interface {
	CreateAccount(ctx context.Context, requestID string, user *models.SeedUser) (*Response, error)
}

// Summary counts the outcome of a run
type Summary struct {
	RunID      string
	Created    int
	Failed     int
	DurationMs int64
}

// Runner sends one generated user per index, strictly in order
type Runner struct {
	gen    *Generator
	client AccountCreator
	from   int
	to     int
	out    io.Writer
	log    zerolog.Logger
}

// NewRunner creates a runner over the inclusive range [from, to]. Per-record
// results are printed to out.
func NewRunner(gen *Generator, client AccountCreator, from, to int, out io.Writer, log zerolog.Logger) *Runner {
	return &Runner{
		gen:    gen,
		client: client,
		from:   from,
		to:     to,
		out:    out,
		log:    log.With().Str("component", "seed_runner").Logger(),
	}
}

// Run posts every user in the range. A failed record is reported and the
// run moves on; Run only stops early when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	summary := &Summary{RunID: uuid.New().String()}
	start := time.Now()
	log := r.log.With().Str("run_id", summary.RunID).Logger()

	log.Info().Int("from", r.from).Int("to", r.to).Msg("Seeding started")

	for i := r.from; i <= r.to; i++ {
		if err := ctx.Err(); err != nil {
			log.Warn().Int("index", i).Msg("Seeding interrupted")
			summary.DurationMs = time.Since(start).Milliseconds()
			return summary, err
		}

		if r.sendOne(ctx, log, i) {
			summary.Created++
		} else {
			summary.Failed++
		}
	}

	summary.DurationMs = time.Since(start).Milliseconds()
	log.Info().
		Int("created", summary.Created).
		Int("failed", summary.Failed).
		Int64("duration_ms", summary.DurationMs).
		Msg("Seeding completed")

	return summary, nil
}

func (r *Runner) sendOne(ctx context.Context, log zerolog.Logger, index int) bool {
	user := r.gen.User(index)

	if errs := validation.ValidateSeedUser(user); len(errs) > 0 {
		fmt.Fprintf(r.out, "[%d] ❌ Invalid: %s %s\n", index, errs[0].Field, errs[0].Message)
		log.Error().Int("index", index).Interface("errors", errs).Msg("Generated user failed validation")
		return false
	}

	requestID := uuid.New().String()
	resp, err := r.client.CreateAccount(ctx, requestID, user)
	if err != nil {
		fmt.Fprintf(r.out, "[%d] ❌ Exception: %v\n", index, err)
		log.Error().Err(err).Int("index", index).Str("request_id", requestID).Msg("Create account request failed")
		return false
	}

	if !resp.Created() {
		fmt.Fprintf(r.out, "[%d] ❌ Failed (%d): %s\n", index, resp.StatusCode, resp.Body)
		log.Warn().
			Int("index", index).
			Int("status", resp.StatusCode).
			Str("request_id", requestID).
			Msg("Account rejected")
		return false
	}

	fmt.Fprintf(r.out, "[%d] ✅ Created: %s\n", index, user.Email)
	log.Debug().Int("index", index).Str("email", user.Email).Str("request_id", requestID).Msg("Account created")
	return true
}
