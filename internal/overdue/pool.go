package overdue

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/RuanLopes1350/AnotaAi/internal/domain"
)

// job is the unit of work handed to the pool.
type job func(ctx context.Context, task domain.Task) error

// runPool processes tasks on workerCount goroutines and returns how many
// succeeded and failed. It stops handing out work once ctx is cancelled.
func runPool(ctx context.Context, tasks []domain.Task, workerCount int, fn job, logger *slog.Logger) (int, int) {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(tasks) {
		workerCount = len(tasks)
	}

	queue := make(chan domain.Task)
	var succeeded, failed atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for task := range queue {
				if err := fn(ctx, task); err != nil {
					failed.Add(1)
					logger.Error("overdue update failed",
						slog.Int("worker_id", workerID),
						slog.String("task_id", task.ID),
						slog.String("error", err.Error()))
					continue
				}
				succeeded.Add(1)
			}
		}(i)
	}

feed:
	for _, task := range tasks {
		select {
		case <-ctx.Done():
			break feed
		case queue <- task:
		}
	}
	close(queue)
	wg.Wait()

	return int(succeeded.Load()), int(failed.Load())
}
