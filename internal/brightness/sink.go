// Package brightness carries user brightness intents from the widget to
// whatever ends up controlling the hardware. Today nothing does: the sink
// records the requested value so the widget reflects it, and the remote
// call is an unresolved contract.
package brightness

import (
	"log/slog"
	"sync"
)

// Target selects which backlight an intent applies to.
type Target int

const (
	TargetDisplay Target = iota
	TargetKeyboard
)

// String returns the target name used in logs.
func (t Target) String() string {
	switch t {
	case TargetKeyboard:
		return "keyboard"
	default:
		return "display"
	}
}

// Intent is one user brightness request, consumed once by the sink.
type Intent struct {
	Target  Target
	Percent float64
}

// Clamped returns the intent with its percentage bounded to [0, 100].
func (i Intent) Clamped() Intent {
	if i.Percent < 0 {
		i.Percent = 0
	}
	if i.Percent > 100 {
		i.Percent = 100
	}
	return i
}

// Sink is the stable call surface the presentation layer uses for
// brightness intents, independent of whether a backing control exists.
type Sink interface {
	Apply(Intent)
}

// LocalSink records the last requested value per target and does not call
// out to any brightness service.
type LocalSink struct {
	mu     sync.Mutex
	values map[Target]float64
	logger *slog.Logger
}

// NewLocalSink creates a sink with both targets at zero.
func NewLocalSink(logger *slog.Logger) *LocalSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocalSink{
		values: make(map[Target]float64),
		logger: logger,
	}
}

// Apply records the intent.
//
// TODO: forward display intents to the session backlight service once a
// wire contract for it is settled; the keyboard side has no service at all
// yet.
func (s *LocalSink) Apply(intent Intent) {
	intent = intent.Clamped()

	s.mu.Lock()
	s.values[intent.Target] = intent.Percent
	s.mu.Unlock()

	s.logger.Debug("recorded brightness intent",
		"target", intent.Target.String(),
		"percent", intent.Percent)
}

// Value returns the last recorded percentage for a target, zero if none.
func (s *LocalSink) Value(target Target) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[target]
}
