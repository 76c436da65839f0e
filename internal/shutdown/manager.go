// Package shutdown stops the application's parts in reverse start order,
// on a signal or when the window closes.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"unused-image-finder/internal/logger"
)

type Shutdownable interface {
	Shutdown()
}

// Func adapts a plain function to Shutdownable
type Func func()

func (f Func) Shutdown() { f() }

// Manager owns the application context. Shutdown cancels it first, then
// stops registered components last-registered first.
type Manager struct {
	mu         sync.Mutex
	components []Shutdownable
	logger     logger.Logger
	timeout    time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewManager(log logger.Logger) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		logger:  log,
		timeout: 10 * time.Second,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Context is cancelled as soon as shutdown starts
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Done is closed once shutdown starts
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

func (m *Manager) Register(component Shutdownable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, component)
}

// Listen shuts down on SIGINT or SIGTERM
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			m.logger.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
				"signal": sig.String(),
			})
			m.Shutdown()
		case <-m.done:
		}
	}()
}

// Shutdown runs once; later calls return immediately
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
	}
	close(m.done)
	m.cancel()

	m.logger.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})
	for i := len(m.components) - 1; i >= 0; i-- {
		if !m.stop(m.components[i]) {
			m.logger.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component_index": i,
				"timeout":         m.timeout.String(),
			})
		}
	}
	m.logger.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// stop reports whether c finished within the timeout
func (m *Manager) stop(c Shutdownable) bool {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		c.Shutdown()
	}()

	timer := time.NewTimer(m.timeout)
	defer timer.Stop()
	select {
	case <-finished:
		return true
	case <-timer.C:
		return false
	}
}
