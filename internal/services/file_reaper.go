package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/promiseroad/backend/internal/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// FileDeletionRepository is the interface that wraps methods for FileDeletions table data access
type FileDeletionRepository interface {
	// Method GetPending retrieves at most "limit" scheduled deletions, oldest first.
	GetPending(ctx context.Context, limit int) ([]models.FileDeletion, error)
	// Method DeleteByIDs removes handled deletions and returns how many rows were removed.
	DeleteByIDs(ctx context.Context, ids []int) (int64, error)
}

// FileRemover removes stored files by their upload relative path
type FileRemover interface {
	// Delete removes a file. Missing files are not an error.
	Delete(relPath string) error
}

const reapBatchSize = 100

// fileReaper removes files whose owning rows were deleted
type fileReaper struct {
	repo    FileDeletionRepository
	remover FileRemover
	logger  *zap.Logger
	mu      sync.Mutex
}

// NewFileReaper creates a new file reaper
func NewFileReaper(repo FileDeletionRepository, remover FileRemover, logger *zap.Logger) *fileReaper {
	return &fileReaper{
		repo:    repo,
		remover: remover,
		logger:  logger,
	}
}

// Reap removes every pending file and returns how many deletions were completed.
// Files that cannot be removed keep their row and are retried on the next run.
func (r *fileReaper) Reap(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for {
		pending, err := r.repo.GetPending(ctx, reapBatchSize)
		if err != nil {
			return total, fmt.Errorf("failed to get pending file deletions: %w", err)
		}
		if len(pending) == 0 {
			return total, nil
		}

		handled := make([]int, 0, len(pending))
		for _, deletion := range pending {
			if err := r.remover.Delete(deletion.Path); err != nil {
				r.logger.Warn("failed to remove file", zap.Int("id", deletion.ID), zap.String("path", deletion.Path), zap.Error(err))
				continue
			}
			handled = append(handled, deletion.ID)
		}

		removed, err := r.repo.DeleteByIDs(ctx, handled)
		if err != nil {
			return total, fmt.Errorf("failed to clear file deletions: %w", err)
		}
		total += int(removed)

		// A short batch is the last one. A batch with failures would be fetched again.
		if len(pending) < reapBatchSize || len(handled) < len(pending) {
			if total > 0 {
				r.logger.Info("reaped deleted files", zap.Int("count", total))
			}
			return total, nil
		}
	}
}

// ReapScheduler runs a Reaper on a cron schedule
type ReapScheduler struct {
	cron   *cron.Cron
	reaper Reaper
	logger *zap.Logger
}

// NewReapScheduler creates a scheduler running reaper on "schedule",
// a standard cron expression or a descriptor such as "@every 10m"
func NewReapScheduler(schedule string, reaper Reaper, logger *zap.Logger) (*ReapScheduler, error) {
	s := &ReapScheduler{
		cron:   cron.New(),
		reaper: reaper,
		logger: logger,
	}

	if _, err := s.cron.AddFunc(schedule, s.run); err != nil {
		return nil, fmt.Errorf("invalid reap schedule %q: %w", schedule, err)
	}

	return s, nil
}

// Start starts the scheduler
func (s *ReapScheduler) Start() {
	s.cron.Start()
	s.logger.Info("File reap scheduler started")
}

// Stop stops the scheduler and waits for a running reap to finish or ctx to expire
func (s *ReapScheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
	s.logger.Info("File reap scheduler stopped")
}

func (s *ReapScheduler) run() {
	if _, err := s.reaper.Reap(context.Background()); err != nil {
		s.logger.Error("scheduled file reap failed", zap.Error(err))
	}
}
