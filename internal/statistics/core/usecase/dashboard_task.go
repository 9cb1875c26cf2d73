package usecase

import (
	"context"
	"sync"
	"time"

	"visit-dashboard-service/internal/statistics/core/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DashboardBuilder interface {
	Execute(ctx context.Context) (*domain.Dashboard, error)
}

// DashboardTask is a single fetch-then-reshape run. It is started once,
// never retried, and delivers its result through Done/Result.
type DashboardTask struct {
	id     string
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}

	mu        sync.Mutex
	cancelled bool
	finished  bool
	dashboard domain.Dashboard
	err       error
}

// StartDashboardTask runs builder.Execute in the background. Cancelling ctx
// or calling Cancel tears the task down; a result that arrives afterwards is
// discarded.
func StartDashboardTask(ctx context.Context, builder DashboardBuilder, logger *zap.Logger) *DashboardTask {
	if logger == nil {
		logger = zap.NewNop()
	}

	taskCtx, cancel := context.WithCancel(ctx)
	t := &DashboardTask{
		id:        uuid.NewString(),
		logger:    logger,
		cancel:    cancel,
		done:      make(chan struct{}),
		dashboard: domain.EmptyDashboard(),
	}

	go t.run(taskCtx, builder)
	return t
}

func (t *DashboardTask) run(ctx context.Context, builder DashboardBuilder) {
	defer t.cancel()
	defer close(t.done)

	start := time.Now()
	dash, err := builder.Execute(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	t.finished = true

	if t.cancelled || ctx.Err() != nil {
		t.cancelled = true
		t.dashboard = domain.EmptyDashboard()
		t.err = ErrTaskCancelled
		t.logger.Debug("discarding stale dashboard result",
			zap.String("task_id", t.id),
			zap.Duration("duration", time.Since(start)))
		return
	}

	if dash != nil {
		t.dashboard = *dash
	}
	t.err = err

	t.logger.Debug("dashboard loaded",
		zap.String("task_id", t.id),
		zap.Bool("available", t.dashboard.Available),
		zap.Duration("duration", time.Since(start)))
}

func (t *DashboardTask) ID() string {
	return t.id
}

func (t *DashboardTask) Done() <-chan struct{} {
	return t.done
}

// Cancel stops a running task. It has no effect once the result is in.
func (t *DashboardTask) Cancel() {
	t.mu.Lock()
	if !t.finished {
		t.cancelled = true
	}
	t.mu.Unlock()
	t.cancel()
}

// Result returns the outcome. Before Done is closed it reports the empty
// dashboard and ErrTaskCancelled if the task was cancelled, or the empty
// dashboard and a nil error while still running.
func (t *DashboardTask) Result() (domain.Dashboard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.finished && t.cancelled {
		return domain.EmptyDashboard(), ErrTaskCancelled
	}
	return t.dashboard, t.err
}

// Wait blocks until the task finishes or ctx is done. When ctx ends first the
// task is cancelled.
func (t *DashboardTask) Wait(ctx context.Context) (domain.Dashboard, error) {
	select {
	case <-t.done:
		return t.Result()
	case <-ctx.Done():
		t.Cancel()
		return domain.EmptyDashboard(), ErrTaskCancelled
	}
}
