package battery

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "1h 24m", "45m", or "<1m".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "<1m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatRemaining renders the battery status line shown under the widget's
// "Battery" heading, e.g. "1h 24m until empty (57%)". With no time estimate
// available only the percentage is shown.
func FormatRemaining(remaining time.Duration, percent float64) string {
	if remaining <= 0 {
		return fmt.Sprintf("%.0f%%", percent)
	}
	return fmt.Sprintf("%s until empty (%.0f%%)", FormatDuration(remaining), percent)
}
