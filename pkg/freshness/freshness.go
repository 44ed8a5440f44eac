package freshness

import (
	"context"
	"sync"
	"time"

	"github.com/dabtools/dabrowse/internal/utils"
	"github.com/dabtools/dabrowse/pkg/api"
)

// DefaultInterval is how often the server status is polled.
const DefaultInterval = 60 * time.Second

// Timestamp is the server-reported "data last updated" time in epoch
// milliseconds. Known is false until the first successful poll.
type Timestamp struct {
	Millis int64
	Known  bool
}

// Time converts the timestamp to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.UnixMilli(t.Millis).UTC()
}

// StatusClient fetches the server status document.
type StatusClient interface {
	Status(ctx context.Context) (api.Status, error)
}

// Tracker polls the server status on a fixed interval and holds the last
// reported update time. The poll goroutine is the only writer; readers go
// through LastUpdated. Poll failures keep the previous value and are never
// surfaced to the user.
type Tracker struct {
	client   StatusClient
	interval time.Duration
	onUpdate func(Timestamp)

	mu   sync.RWMutex
	last Timestamp
}

// NewTracker builds a tracker. interval <= 0 selects DefaultInterval.
// onUpdate, if non-nil, is invoked after every successful poll.
func NewTracker(client StatusClient, interval time.Duration, onUpdate func(Timestamp)) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{client: client, interval: interval, onUpdate: onUpdate}
}

// LastUpdated returns the most recent successfully polled timestamp.
func (t *Tracker) LastUpdated() Timestamp {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.last
}

// Start launches the polling loop. The first poll runs immediately; the loop
// then ticks every interval until ctx is cancelled.
func (t *Tracker) Start(ctx context.Context) {
	go func() {
		t.poll(ctx)

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.poll(ctx)
			}
		}
	}()
}

func (t *Tracker) poll(ctx context.Context) {
	status, err := t.client.Status(ctx)
	if err != nil {
		utils.Log.Debugf("Status poll failed: %v", err)
		return
	}

	ts := Timestamp{Millis: status.LastUpdated, Known: true}
	t.mu.Lock()
	t.last = ts
	t.mu.Unlock()

	if t.onUpdate != nil {
		t.onUpdate(ts)
	}
}
