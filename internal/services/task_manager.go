package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/internal/metrics"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusFailed    TaskStatus = "failed"
)

type TaskResult struct {
	ID      int64      `json:"task_id"`
	Status  TaskStatus `json:"status"`
	Outcome any        `json:"outcome,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type TaskFunc func(ctx context.Context) (any, error)

type TaskManager interface {
	// Submit runs fn in the background and returns the ID to poll its result with.
	Submit(ctx context.Context, taskType string, fn TaskFunc) int64
	// Result returns the state of the task. Finished results are handed out once and then forgotten.
	Result(id int64) (TaskResult, error)
	Stop()
}

var _ TaskManager = (*taskManager)(nil)

type taskManager struct {
	pool           pond.Pool
	metricsService metrics.MetricsService
	nextID         atomic.Int64

	mu      sync.Mutex
	results map[int64]TaskResult
}

func NewTaskManager(maxConcurrency int, metricsService metrics.MetricsService) (*taskManager, error) {
	if metricsService == nil {
		return nil, errors.New("metricsService cannot be nil")
	}
	pool := pond.NewPool(maxConcurrency)
	metricsService.RegisterPoolMetrics("tasks", pool)
	return &taskManager{
		pool:           pool,
		metricsService: metricsService,
		results:        make(map[int64]TaskResult),
	}, nil
}

func (m *taskManager) Submit(ctx context.Context, taskType string, fn TaskFunc) int64 {
	id := m.nextID.Add(1)
	m.setResult(TaskResult{ID: id, Status: TaskStatusPending})

	// Tasks outlive the request that created them.
	taskCtx := context.WithoutCancel(ctx)
	m.pool.Submit(func() {
		outcome, err := fn(taskCtx)
		if err != nil {
			log.Ctx(taskCtx).Errorf("Task %d (%s) failed: %v", id, taskType, err)
			m.metricsService.IncTasks(taskType, string(TaskStatusFailed))
			m.setResult(TaskResult{ID: id, Status: TaskStatusFailed, Error: err.Error()})
			return
		}
		m.metricsService.IncTasks(taskType, string(TaskStatusCompleted))
		m.setResult(TaskResult{ID: id, Status: TaskStatusCompleted, Outcome: outcome})
	})
	return id
}

func (m *taskManager) Result(id int64) (TaskResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result, ok := m.results[id]
	if !ok {
		return TaskResult{}, fmt.Errorf("getting task %d: %w", id, ErrTaskNotFound)
	}
	if result.Status != TaskStatusPending {
		delete(m.results, id)
	}
	return result, nil
}

func (m *taskManager) Stop() {
	m.pool.StopAndWait()
}

func (m *taskManager) setResult(result TaskResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[result.ID] = result
}
