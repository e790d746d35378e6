package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yukikurage/category-task-api/internal/metrics"
	"github.com/yukikurage/category-task-api/internal/repository"
)

// CleanupService removes tasks left behind when a category delete did not
// complete. The sweep is idempotent.
type CleanupService struct {
	taskRepo repository.TaskRepository
	metrics  metrics.Recorder
	logger   *slog.Logger
}

// NewCleanupService creates a new CleanupService.
func NewCleanupService(taskRepo repository.TaskRepository, recorder metrics.Recorder, logger *slog.Logger) *CleanupService {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CleanupService{
		taskRepo: taskRepo,
		metrics:  recorder,
		logger:   logger,
	}
}

// SweepOrphanTasks deletes every task whose category does not resolve to a
// category of the same owner and returns how many were removed.
func (s *CleanupService) SweepOrphanTasks(ctx context.Context) (int64, error) {
	start := time.Now()

	deleted, err := s.taskRepo.DeleteOrphans(ctx)
	if err != nil {
		s.logger.Error("orphan task sweep failed", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to sweep orphan tasks: %w", err)
	}

	s.metrics.RecordOrphansSwept(deleted)
	s.logger.Info("orphan task sweep completed",
		slog.Int64("deleted_count", deleted),
		slog.Float64("duration_ms", float64(time.Since(start).Microseconds())/1000),
	)

	return deleted, nil
}
