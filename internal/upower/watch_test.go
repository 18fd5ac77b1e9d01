package upower

import (
	"context"
	"testing"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recvEvent reads one event from the stream or fails the test.
func recvEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "event stream closed unexpectedly")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatch_InitialSyntheticEventFirst(t *testing.T) {
	d := testDevice(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := d.Watch(ctx, PropIconName, PropPercentage, PropTimeToEmpty)

	ev := recvEvent(t, events)
	assert.True(t, ev.Initial)
	assert.Empty(t, ev.Property)

	// No real change ever arrives: exactly one event, nothing more pending.
	select {
	case ev := <-events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatch_PreservesArrivalOrder(t *testing.T) {
	d := testDevice(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := d.Watch(ctx, PropIconName, PropPercentage, PropTimeToEmpty)
	assert.True(t, recvEvent(t, events).Initial)

	// A, B, A must produce exactly three events in that order.
	d.signals <- propertiesChanged(map[string]dbus.Variant{"Percentage": dbus.MakeVariant(41.0)}, nil)
	d.signals <- propertiesChanged(map[string]dbus.Variant{"IconName": dbus.MakeVariant("battery-level-40-symbolic")}, nil)
	d.signals <- propertiesChanged(map[string]dbus.Variant{"Percentage": dbus.MakeVariant(42.0)}, nil)

	assert.Equal(t, PropPercentage, recvEvent(t, events).Property)
	assert.Equal(t, PropIconName, recvEvent(t, events).Property)
	assert.Equal(t, PropPercentage, recvEvent(t, events).Property)
}

func TestWatch_SimultaneousChangesNotCoalesced(t *testing.T) {
	d := testDevice(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := d.Watch(ctx, PropIconName, PropPercentage, PropTimeToEmpty)
	assert.True(t, recvEvent(t, events).Initial)

	d.signals <- propertiesChanged(map[string]dbus.Variant{
		"IconName":   dbus.MakeVariant("battery-level-50-symbolic"),
		"Percentage": dbus.MakeVariant(50.0),
	}, nil)

	got := map[Property]int{}
	got[recvEvent(t, events).Property]++
	got[recvEvent(t, events).Property]++
	assert.Equal(t, 1, got[PropIconName])
	assert.Equal(t, 1, got[PropPercentage])
}

func TestWatch_CancelClosesStream(t *testing.T) {
	d := testDevice(nil)
	ctx, cancel := context.WithCancel(context.Background())

	events := d.Watch(ctx, PropPercentage)
	assert.True(t, recvEvent(t, events).Initial)

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "stream should be closed after cancellation")
	case <-time.After(2 * time.Second):
		t.Fatal("stream not closed after cancellation")
	}
}

func TestWatch_UnobservedChangeEmitsNothing(t *testing.T) {
	d := testDevice(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := d.Watch(ctx, PropPercentage)
	assert.True(t, recvEvent(t, events).Initial)

	d.signals <- propertiesChanged(map[string]dbus.Variant{"Voltage": dbus.MakeVariant(12.1)}, nil)
	d.signals <- propertiesChanged(map[string]dbus.Variant{"Percentage": dbus.MakeVariant(42.0)}, nil)

	// The Voltage change updates the cache but produces no event; the next
	// event seen is the Percentage change.
	assert.Equal(t, PropPercentage, recvEvent(t, events).Property)
}
