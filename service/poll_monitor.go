package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.vocdoni.io/dvote/log"

	"github.com/Lauren6175/arcane-vote/engine"
)

// PollMonitor is a background service that periodically deactivates expired
// polls. Closure is always evaluated against the clock at call time by the
// engine itself; the monitor only keeps the stored Active flags in sync so
// poll listings reflect reality.
type PollMonitor struct {
	engine   *engine.Engine
	interval time.Duration
	mu       sync.Mutex
	cancel   context.CancelFunc
}

// NewPollMonitor creates a new PollMonitor service.
func NewPollMonitor(eng *engine.Engine, interval time.Duration) *PollMonitor {
	return &PollMonitor{
		engine:   eng,
		interval: interval,
	}
}

// Start begins the monitoring loop. It returns an error if the service is
// already running.
func (pm *PollMonitor) Start(ctx context.Context) error {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.cancel != nil {
		return fmt.Errorf("service already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	pm.cancel = cancel

	go pm.monitorPolls(ctx)
	return nil
}

// Stop halts the monitoring service.
func (pm *PollMonitor) Stop() {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	if pm.cancel != nil {
		pm.cancel()
		pm.cancel = nil
	}
}

func (pm *PollMonitor) monitorPolls(ctx context.Context) {
	ticker := time.NewTicker(pm.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			closed, err := pm.engine.CloseExpired()
			if err != nil {
				log.Warnw("failed to close expired polls", "error", err.Error())
				continue
			}
			if closed > 0 {
				log.Infow("closed expired polls", "count", closed)
			}
		}
	}
}
