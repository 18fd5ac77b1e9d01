package battery

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmylchreest/battray/internal/upower"
)

// PropertyReader is the read surface the synchronizer needs from the cached
// device proxy. upower.Device implements it.
type PropertyReader interface {
	CachedString(upower.Property) (string, bool, error)
	CachedFloat64(upower.Property) (float64, bool, error)
	CachedInt64(upower.Property) (int64, bool, error)
}

// PublishFunc receives an immutable snapshot copy after each recomputation.
// It is called from the synchronizer goroutine; callers that touch UI state
// must marshal onto their main loop themselves.
type PublishFunc func(Snapshot)

// Synchronizer consumes the merged change stream and recomputes the
// snapshot, one event at a time. Recomputations never overlap: the next
// event is not read until the previous recomputation has been published.
type Synchronizer struct {
	device PropertyReader
	events <-chan upower.Event
	logger *slog.Logger

	snap    Snapshot
	publish PublishFunc
}

// NewSynchronizer creates a synchronizer over the given device and merged
// event stream, starting from the default snapshot.
func NewSynchronizer(device PropertyReader, events <-chan upower.Event, logger *slog.Logger) *Synchronizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synchronizer{
		device: device,
		events: events,
		logger: logger,
		snap:   DefaultSnapshot(),
	}
}

// SetPublishCallback sets the subscriber notified after each recomputation.
// Must be called before Run.
func (s *Synchronizer) SetPublishCallback(cb PublishFunc) {
	s.publish = cb
}

// Snapshot returns the current snapshot value.
func (s *Synchronizer) Snapshot() Snapshot {
	return s.snap
}

// Run processes the event stream until ctx is cancelled or the stream
// closes. The first event is the merger's synthetic initial trigger, so the
// snapshot is populated from current values before any real change arrives.
func (s *Synchronizer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-s.events:
			if !ok {
				return
			}
			s.recompute()
			if s.publish != nil {
				s.publish(s.snap)
			}
		}
	}
}

// recompute re-reads each observed property independently. A field is
// overwritten only when its read succeeds with a present value; absent or
// mistyped properties leave the previous value untouched. The three
// properties can be independently stale at any instant, so this is
// per-field best-effort rather than all-or-nothing.
func (s *Synchronizer) recompute() {
	if v, ok, err := s.device.CachedString(upower.PropIconName); err != nil {
		s.logger.Debug("icon name read failed", "error", err)
	} else if ok {
		s.snap.IconName = v
	}

	if v, ok, err := s.device.CachedFloat64(upower.PropPercentage); err != nil {
		s.logger.Debug("percentage read failed", "error", err)
	} else if ok {
		s.snap.Percent = v
	}

	if v, ok, err := s.device.CachedInt64(upower.PropTimeToEmpty); err != nil {
		s.logger.Debug("time to empty read failed", "error", err)
	} else if ok {
		if v < 0 {
			v = 0
		}
		s.snap.TimeRemaining = time.Duration(v) * time.Second
	}
}
