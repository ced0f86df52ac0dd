package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/clinicprime/notelens/internal/domain"
)

// BatchConfig holds configuration for batch resolution
type BatchConfig struct {
	Workers int
	Logger  *zap.SugaredLogger
}

// BatchService resolves many notes in parallel, one independent resolution per note
type BatchService struct {
	notes   *NoteService
	workers int
	logger  *zap.SugaredLogger
}

// NewBatchService creates a batch service on top of a note service
func NewBatchService(notes *NoteService, config BatchConfig) *BatchService {
	workers := config.Workers
	if workers <= 0 {
		workers = 8
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &BatchService{
		notes:   notes,
		workers: workers,
		logger:  logger,
	}
}

// ResolveBatch resolves every record and returns the items in input order.
// Cancelling ctx stops scheduling new notes and returns ctx.Err().
func (s *BatchService) ResolveBatch(ctx context.Context, records []domain.NoteRecord) ([]domain.BatchItem, error) {
	runID := uuid.NewString()
	start := time.Now()
	s.logger.Infow("batch started", "run_id", runID, "notes", len(records), "workers", s.workers)

	items := make([]domain.BatchItem, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, record := range records {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := s.notes.ResolveNote(gctx, &domain.ResolveRequest{Fields: record.Fields})
			if err != nil {
				return fmt.Errorf("note %q: %w", record.ID, err)
			}
			items[i] = domain.NewBatchItem(record.ID, result)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warnw("batch aborted", "run_id", runID, "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Infow("batch finished", "run_id", runID, "notes", len(records), "elapsed", time.Since(start))
	return items, nil
}

// ResolveSource reads every note of a source and resolves the batch
func (s *BatchService) ResolveSource(ctx context.Context, source domain.NoteSource) ([]domain.BatchItem, error) {
	records, err := source.ReadNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read notes: %w", err)
	}
	return s.ResolveBatch(ctx, records)
}
