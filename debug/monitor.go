// Package debug provides runtime monitoring and diagnostics.
package debug

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/drake/tinycli/console"
)

// Enabled returns true if debug mode is active (TINYCLI_DEBUG=1).
func Enabled() bool {
	return os.Getenv("TINYCLI_DEBUG") == "1"
}

// Monitor periodically logs console statistics when debug mode is enabled.
type Monitor struct {
	console  *console.Console
	interval time.Duration
	ctx      context.Context
	logger   *log.Logger
}

// NewMonitor creates a new monitor for the given console.
// If debug mode is not enabled, returns nil.
func NewMonitor(ctx context.Context, c *console.Console) *Monitor {
	if !Enabled() {
		return nil
	}

	return &Monitor{
		console:  c,
		interval: 5 * time.Second,
		ctx:      ctx,
		logger:   log.New(os.Stderr, "", log.LstdFlags),
	}
}

// Start begins the monitoring loop in a goroutine.
func (m *Monitor) Start() {
	if m == nil {
		return
	}
	go m.run()
}

func (m *Monitor) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Println("[DEBUG] Monitor started")

	for {
		select {
		case <-m.ctx.Done():
			m.logger.Println("[DEBUG] Monitor stopped")
			return
		case <-ticker.C:
			st := m.console.Stats()
			m.logger.Printf("[DEBUG] bytes=%d lines=%d dispatched=%d unknown=%d dropped=%d",
				st.Bytes, st.Lines, st.Dispatched, st.Unknown, st.Dropped)
		}
	}
}
