package daemon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/battray/internal/battery"
	"github.com/jmylchreest/battray/internal/config"
)

type sentNotification struct {
	summary string
	urgency byte
}

func testNotifier(t *testing.T) (*Notifier, *[]sentNotification) {
	t.Helper()
	cfg := config.DefaultConfig() // low 20, critical 10
	n := NewNotifier(cfg, nil)

	var sent []sentNotification
	n.SetNotifyFunc(func(summary, body, icon string, urgency byte) error {
		sent = append(sent, sentNotification{summary: summary, urgency: urgency})
		return nil
	})
	return n, &sent
}

func snapAt(percent float64) battery.Snapshot {
	return battery.Snapshot{IconName: "battery-caution-symbolic", Percent: percent}
}

func TestNotifier_FiresOnceOnLowCrossing(t *testing.T) {
	n, sent := testNotifier(t)

	n.Observe(snapAt(50))
	assert.Empty(t, *sent)

	n.Observe(snapAt(19))
	require.Len(t, *sent, 1)
	assert.Equal(t, "Battery low", (*sent)[0].summary)
	assert.Equal(t, urgencyNormal, (*sent)[0].urgency)

	// Hovering below the threshold does not repeat the warning.
	n.Observe(snapAt(18))
	n.Observe(snapAt(17))
	assert.Len(t, *sent, 1)
}

func TestNotifier_CriticalEscalates(t *testing.T) {
	n, sent := testNotifier(t)

	n.Observe(snapAt(19))
	require.Len(t, *sent, 1)

	n.Observe(snapAt(9))
	require.Len(t, *sent, 2)
	assert.Equal(t, "Battery critically low", (*sent)[1].summary)
	assert.Equal(t, urgencyCritical, (*sent)[1].urgency)

	n.Observe(snapAt(8))
	assert.Len(t, *sent, 2)
}

func TestNotifier_RearmsAfterRecovery(t *testing.T) {
	n, sent := testNotifier(t)

	n.Observe(snapAt(19))
	require.Len(t, *sent, 1)

	// Charged back above the threshold, then drained again: fires again.
	n.Observe(snapAt(80))
	n.Observe(snapAt(15))
	require.Len(t, *sent, 2)
	assert.Equal(t, "Battery low", (*sent)[1].summary)
}

func TestNotifier_CriticalCrossingSkipsLowDuplicate(t *testing.T) {
	n, sent := testNotifier(t)

	// Dropping straight past both thresholds yields one critical warning,
	// not a low warning followed by a critical one.
	n.Observe(snapAt(5))
	require.Len(t, *sent, 1)
	assert.Equal(t, "Battery critically low", (*sent)[0].summary)
}

func TestNotifier_ZeroThresholdDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Battery.LowThreshold = 0
	cfg.Battery.CriticalThreshold = 0
	n := NewNotifier(cfg, nil)

	var sent []sentNotification
	n.SetNotifyFunc(func(summary, body, icon string, urgency byte) error {
		sent = append(sent, sentNotification{summary: summary, urgency: urgency})
		return nil
	})

	n.Observe(snapAt(1))
	assert.Empty(t, sent)
}

func TestNotifier_UpdateConfigAppliesNewThresholds(t *testing.T) {
	n, sent := testNotifier(t)

	n.Observe(snapAt(30))
	assert.Empty(t, *sent)

	cfg := config.DefaultConfig()
	cfg.Battery.LowThreshold = 40
	n.UpdateConfig(cfg)

	n.Observe(snapAt(30))
	assert.Len(t, *sent, 1)
}
