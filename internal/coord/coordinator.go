// Package coord runs flick's background work: periodic service health
// checks reported to the UI as messages.
package coord

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/flick/internal/api"
	"github.com/abelbrown/flick/internal/logging"
	"github.com/abelbrown/flick/internal/ui"
)

// checkTimeout caps a single health request.
const checkTimeout = 5 * time.Second

// checker is the part of api.Client the coordinator needs.
type checker interface {
	Health(ctx context.Context) (*api.HealthResponse, error)
}

// sender is satisfied by *tea.Program.
type sender interface {
	Send(msg tea.Msg)
}

// Coordinator polls the service health endpoint.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	checker  checker
	interval time.Duration
	wg       sync.WaitGroup

	mu     sync.Mutex
	online *bool // last reported state, nil before the first check
}

// NewCoordinator creates a Coordinator that checks every interval.
func NewCoordinator(c checker, interval time.Duration) *Coordinator {
	return &Coordinator{checker: c, interval: interval}
}

// Start begins background polling. Call with a cancellable context.
// Performs an initial check immediately, then one per interval. A
// non-positive interval checks once.
func (c *Coordinator) Start(ctx context.Context, program sender) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.check(ctx, program)
		if c.interval <= 0 {
			return
		}

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.check(ctx, program)
			}
		}
	}()
}

// Wait blocks until the background goroutine exits.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// check runs one health request and reports the outcome.
func (c *Coordinator) check(ctx context.Context, program sender) {
	if ctx.Err() != nil {
		return
	}
	checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.checker.Health(checkCtx)
	msg := ui.HealthChecked{Latency: time.Since(start), Err: err}
	if err == nil {
		msg.Status = resp.Status
		msg.TotalMovies = resp.TotalMovies
	}
	if ctx.Err() != nil {
		// Shutting down; the result says nothing about the service.
		return
	}

	c.logTransition(msg.Online())

	// Handle nil program gracefully for testing
	if program != nil {
		program.Send(msg)
	}
}

// logTransition logs only when the service changes state.
func (c *Coordinator) logTransition(online bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.online != nil && *c.online == online {
		return
	}
	c.online = &online
	if online {
		logging.Info("service reachable")
	} else {
		logging.Warn("service unreachable")
	}
}
