// Package dashboard maintains an aggregated read view over the meeting
// registry. The view is refreshed as a whole: a new snapshot is built from
// a single query pass and swapped in atomically, so readers never observe
// a partially updated aggregate.
package dashboard

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/echomindhq/echomind/internal/meetings"
	"github.com/echomindhq/echomind/pkg/lifecycle"
)

// hoursPerMeeting is the flat per-meeting estimate used for the time-saved
// aggregate shown on the dashboard.
const hoursPerMeeting = 2.5

// Snapshot is one immutable aggregate of the meeting registry.
type Snapshot struct {
	Meetings       []meetings.Meeting `json:"meetings"`
	Count          int                `json:"count"`
	CompletedCount int                `json:"completed_count"`
	EstimatedHours float64            `json:"estimated_hours"`
	RefreshedAt    time.Time          `json:"refreshed_at"`
}

// View holds the current snapshot and refreshes it on demand.
type View struct {
	meetings meetings.System
	logger   *slog.Logger
	current  atomic.Pointer[Snapshot]
}

// NewView creates a dashboard view seeded with an empty snapshot.
func NewView(registry meetings.System, logger *slog.Logger) *View {
	v := &View{
		meetings: registry,
		logger:   logger.With("system", "dashboard"),
	}
	v.current.Store(&Snapshot{Meetings: []meetings.Meeting{}})
	return v
}

// Snapshot returns the current aggregate. The returned value is immutable;
// callers must not modify the meetings slice.
func (v *View) Snapshot() *Snapshot {
	return v.current.Load()
}

// Refresh rebuilds the aggregate from the registry and swaps it in. On
// failure the previous snapshot remains in place untouched.
func (v *View) Refresh(ctx context.Context) error {
	records, err := v.meetings.All(ctx)
	if err != nil {
		v.logger.Error("dashboard refresh failed", "error", err)
		return err
	}

	completed := 0
	for _, m := range records {
		if m.IsCompleted {
			completed++
		}
	}
	if records == nil {
		records = []meetings.Meeting{}
	}

	next := &Snapshot{
		Meetings:       records,
		Count:          len(records),
		CompletedCount: completed,
		EstimatedHours: hoursPerMeeting * float64(len(records)),
		RefreshedAt:    time.Now(),
	}

	v.current.Store(next)
	v.logger.Debug("dashboard refreshed", "meetings", next.Count)
	return nil
}

// Start warms the view once the registry is reachable.
func (v *View) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		if err := v.Refresh(lc.Context()); err != nil {
			v.logger.Warn("initial dashboard refresh failed, serving empty snapshot", "error", err)
		}
	})
}
