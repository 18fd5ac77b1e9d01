// Package battery maintains the in-memory snapshot of the display device
// and recomputes it from cached UPower properties whenever the merged
// change stream fires.
package battery

import (
	"time"
)

// DefaultIconName is shown until the first real icon arrives from UPower.
const DefaultIconName = "battery-symbolic"

// Snapshot is the authoritative view of battery state. Fields always hold
// the last successfully read values; a failed or absent read leaves the
// previous value in place, so consumers see last-known-good data rather
// than a blanked widget.
//
// Snapshots are published by value: consumers never share mutable state
// with the synchronizer.
type Snapshot struct {
	IconName      string
	Percent       float64
	TimeRemaining time.Duration
}

// DefaultSnapshot returns the fully-specified initial state shown before
// the device resolves (and forever, if it never does).
func DefaultSnapshot() Snapshot {
	return Snapshot{
		IconName:      DefaultIconName,
		Percent:       0,
		TimeRemaining: 0,
	}
}
