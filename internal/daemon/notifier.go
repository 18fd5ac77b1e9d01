package daemon

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"

	"github.com/jmylchreest/battray/internal/battery"
	"github.com/jmylchreest/battray/internal/config"
)

// Freedesktop notification urgency hint values.
const (
	urgencyNormal   = byte(1)
	urgencyCritical = byte(2)
)

// NotifyFunc delivers one desktop notification.
type NotifyFunc func(summary, body, icon string, urgency byte) error

// Notifier raises low-battery desktop notifications. Warnings are
// edge-triggered: crossing a threshold fires once, and the trigger re-arms
// only after the charge climbs back above it (so a battery hovering around
// the threshold doesn't spam).
type Notifier struct {
	mu     sync.Mutex
	logger *slog.Logger

	low      float64
	critical float64

	lowFired      bool
	criticalFired bool

	notify NotifyFunc

	// Lazily opened session bus connection for the default notify func.
	conn *dbus.Conn
}

// NewNotifier creates a notifier with thresholds from the config.
func NewNotifier(cfg *config.Config, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &Notifier{
		logger:   logger,
		low:      cfg.Battery.LowThreshold,
		critical: cfg.Battery.CriticalThreshold,
	}
	n.notify = n.sendNotification
	return n
}

// SetNotifyFunc overrides notification delivery.
func (n *Notifier) SetNotifyFunc(fn NotifyFunc) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notify = fn
}

// UpdateConfig applies reloaded thresholds.
func (n *Notifier) UpdateConfig(cfg *config.Config) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.low = cfg.Battery.LowThreshold
	n.critical = cfg.Battery.CriticalThreshold
}

// Observe inspects a published snapshot and fires threshold warnings.
// Called from the synchronizer goroutine.
func (n *Notifier) Observe(snap battery.Snapshot) {
	n.mu.Lock()

	var fire func() error
	switch {
	case n.critical > 0 && snap.Percent <= n.critical && !n.criticalFired:
		n.criticalFired = true
		n.lowFired = true
		notify := n.notify
		fire = func() error {
			return notify("Battery critically low",
				fmt.Sprintf("%s remaining", battery.FormatRemaining(snap.TimeRemaining, snap.Percent)),
				snap.IconName, urgencyCritical)
		}
	case n.low > 0 && snap.Percent <= n.low && !n.lowFired:
		n.lowFired = true
		notify := n.notify
		fire = func() error {
			return notify("Battery low",
				fmt.Sprintf("%s remaining", battery.FormatRemaining(snap.TimeRemaining, snap.Percent)),
				snap.IconName, urgencyNormal)
		}
	}

	// Re-arm once the battery recovers above a threshold.
	if snap.Percent > n.low {
		n.lowFired = false
	}
	if snap.Percent > n.critical {
		n.criticalFired = false
	}
	n.mu.Unlock()

	if fire != nil {
		if err := fire(); err != nil {
			n.logger.Warn("failed to send low battery notification", "error", err)
		}
	}
}

// sendNotification delivers via org.freedesktop.Notifications on the
// session bus.
func (n *Notifier) sendNotification(summary, body, icon string, urgency byte) error {
	n.mu.Lock()
	conn := n.conn
	n.mu.Unlock()

	if conn == nil {
		c, err := dbus.ConnectSessionBus()
		if err != nil {
			return fmt.Errorf("failed to connect to session bus: %w", err)
		}
		n.mu.Lock()
		n.conn = c
		n.mu.Unlock()
		conn = c
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		"battray",        // app_name
		uint32(0),        // replaces_id
		icon,             // app_icon
		summary,          // summary
		body,             // body
		[]string{},       // actions
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(urgency),
		},
		int32(-1), // expire_timeout: server default
	)
	if call.Err != nil {
		return fmt.Errorf("failed to send notification: %w", call.Err)
	}
	return nil
}
