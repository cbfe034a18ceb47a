// Package lifecycle runs long-lived jobs until the context ends or one fails,
// then runs shutdown hooks in registration order.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

const defaultShutdownTimeout = 5 * time.Second

type job struct {
	name string
	fn   func(context.Context) error
}

type Manager struct {
	mu              sync.Mutex
	runs            []job
	shutdowns       []job
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

type Option func(*Manager)

func WithShutdownTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.shutdownTimeout = d
		}
	}
}

func NewManager(logger *slog.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{logger: logger, shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) AddRun(name string, fn func(context.Context) error) {
	m.add(&m.runs, name, fn)
}

// AddShutdown registers a hook. Each hook gets its own deadline.
func (m *Manager) AddShutdown(name string, fn func(context.Context) error) {
	m.add(&m.shutdowns, name, fn)
}

func (m *Manager) add(list *[]job, name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	*list = append(*list, job{name: name, fn: fn})
	m.mu.Unlock()
}

func (m *Manager) StartAndWait(ctx context.Context) error {
	runCtx, cancelRuns := context.WithCancel(ctx)
	defer cancelRuns()

	runs := m.snapshot(&m.runs)
	shutdowns := m.snapshot(&m.shutdowns)

	errCh := make(chan error, len(runs))
	var wg sync.WaitGroup
	for _, j := range runs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			if err := j.fn(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				m.logger.Error("job failed", "job", j.name, "err", err)
				errCh <- err
				cancelRuns()
			}
		}(j)
	}

	doneCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(doneCh)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		m.logger.Info("shutdown requested")
		cancelRuns()
	case err := <-errCh:
		runErr = err
		cancelRuns()
	case <-doneCh:
	}
	<-doneCh

	var shutdownErr error
	for _, j := range shutdowns {
		if err := m.runShutdown(j); err != nil {
			m.logger.Warn("shutdown hook failed", "job", j.name, "err", err)
			shutdownErr = errors.Join(shutdownErr, err)
		}
	}
	return errors.Join(runErr, shutdownErr)
}

func (m *Manager) runShutdown(j job) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.shutdownTimeout)
	defer cancel()
	if err := j.fn(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (m *Manager) snapshot(list *[]job) []job {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]job, len(*list))
	copy(out, *list)
	return out
}
