package notify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gauthierbraillon/bragboard/internal/model"
)

// DefaultInterval is the dashboard's polling cadence.
const DefaultInterval = 5 * time.Second

// FetchFunc retrieves the current notification collection.
type FetchFunc func(ctx context.Context) ([]model.Notification, error)

// Poller feeds a tracker from a fetch on a fixed interval.
type Poller struct {
	tracker  *Tracker
	fetch    FetchFunc
	interval time.Duration
	logger   *zap.Logger

	// OnChange, when set, is called after a poll that changed the state.
	OnChange func(State, []model.Notification)
	// OnError, when set, is called with every failed fetch.
	OnError func(error)
}

// NewPoller creates a poller. A non-positive interval uses DefaultInterval.
func NewPoller(tracker *Tracker, fetch FetchFunc, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{tracker: tracker, fetch: fetch, interval: interval, logger: logger}
}

// Poll runs a single fetch and feeds the result to the tracker.
func (p *Poller) Poll(ctx context.Context) (State, error) {
	items, err := p.fetch(ctx)
	if err != nil {
		p.logger.Warn("notification poll failed", zap.Error(err))
		if p.OnError != nil {
			p.OnError(err)
		}
		return p.tracker.State(), err
	}

	before := p.tracker.State()
	after := p.tracker.Observe(items)
	if after != before && p.OnChange != nil {
		p.OnChange(after, p.tracker.Visible())
	}
	return after, nil
}

// Run polls immediately and then on every tick until ctx ends. Fetch failures
// do not stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if _, err := p.Poll(ctx); err != nil && ctx.Err() != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
