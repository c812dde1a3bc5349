package overdue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
	"github.com/RuanLopes1350/AnotaAi/internal/redact"
	"github.com/RuanLopes1350/AnotaAi/internal/store"
)

// batchSize is the page size used to scan candidates.
const batchSize = 100

// sweptStatuses are the statuses a task may leave when its due date passes.
var sweptStatuses = []domain.TaskStatus{domain.TaskStatusPending, domain.TaskStatusInProgress}

// Config holds the sweeper settings.
type Config struct {
	// Interval between sweeps. Must be positive for Start.
	Interval time.Duration
	// Workers is the number of concurrent updates. Defaults to 1.
	Workers int
}

// Result summarizes one sweep.
type Result struct {
	Marked int
	Failed int
}

// Sweeper periodically marks past-due tasks as overdue.
type Sweeper struct {
	tasks  store.TaskStore
	config Config
	now    func() time.Time
	logger *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSweeper creates a sweeper over tasks. If logger is nil, the default
// logger is used.
func NewSweeper(tasks store.TaskStore, config Config, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Workers <= 0 {
		config.Workers = 1
	}
	return &Sweeper{
		tasks:  tasks,
		config: config,
		now:    time.Now,
		logger: logger.With(slog.String("component", "overdue_sweeper")),
	}
}

// Start runs a sweep immediately and then every Interval until Stop is called
// or ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.config.Interval <= 0 {
		return fmt.Errorf("sweep interval must be positive, got %s", s.config.Interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return errors.New("sweeper already started")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("overdue sweeper started",
		slog.Duration("interval", s.config.Interval),
		slog.Int("workers", s.config.Workers))
	return nil
}

// Stop cancels the loop and waits for an in-progress sweep to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.logger.Info("overdue sweeper stopped")
}

func (s *Sweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		if _, err := s.Sweep(ctx); err != nil && ctx.Err() == nil {
			s.logger.Error("overdue sweep failed", slog.String("error", redact.Error(err)))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Sweep marks every pending or in-progress task due before now as overdue.
func (s *Sweeper) Sweep(ctx context.Context) (Result, error) {
	start := s.now()

	candidates, err := s.candidates(ctx, start)
	if err != nil {
		return Result{}, err
	}
	if len(candidates) == 0 {
		s.logger.Debug("no overdue tasks")
		return Result{}, nil
	}

	overdue := domain.TaskStatusOverdue
	marked, failed := runPool(ctx, candidates, s.config.Workers, func(ctx context.Context, task domain.Task) error {
		_, err := s.tasks.Update(ctx, task.ID, domain.TaskPatch{Status: &overdue})
		if errors.Is(err, store.ErrNotFound) {
			// Deleted since the scan.
			return nil
		}
		return err
	}, s.logger)

	result := Result{Marked: marked, Failed: failed}
	s.logger.Info("overdue sweep completed",
		slog.Int("candidates", len(candidates)),
		slog.Int("marked", result.Marked),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", s.now().Sub(start)))
	return result, nil
}

// candidates collects the tasks to mark before any update, so that paging is
// not disturbed by the status changes.
func (s *Sweeper) candidates(ctx context.Context, now time.Time) ([]domain.Task, error) {
	var out []domain.Task
	for _, status := range sweptStatuses {
		var filter store.Filter
		filter.Eq(store.TaskFieldStatus, string(status)).Range(store.TaskFieldDueDate, nil, &now)

		for page := 1; ; page++ {
			result, err := s.tasks.List(ctx, filter, store.PageRequest{
				Page:      page,
				Limit:     batchSize,
				SortField: store.TaskFieldDueDate,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to list %s tasks: %w", status, err)
			}
			for _, task := range result.Docs {
				if task.Status == status && task.DueDate.Before(now) {
					out = append(out, task)
				}
			}
			if !result.HasNextPage {
				break
			}
		}
	}
	return out, nil
}
