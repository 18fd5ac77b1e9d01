package upower

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// Watch merges change notifications for the given properties into a single
// event stream. All subscriptions are in place before the first event can be
// consumed (the match rule was registered at resolve time and the observed
// set is fixed before the forwarding goroutine starts), so an early change
// cannot be missed.
//
// Semantics:
//   - one Event per underlying property change, in arrival order; changes
//     are never coalesced, a PropertiesChanged signal carrying several
//     observed properties yields one Event per property;
//   - one synthetic Event with Initial=true is emitted before any real
//     change, so consumers populate from current values without waiting for
//     the first mutation;
//   - the stream never ends on its own; it is abandoned only when ctx is
//     cancelled, which closes the returned channel.
func (d *Device) Watch(ctx context.Context, props ...Property) <-chan Event {
	observed := make([]Property, len(props))
	copy(observed, props)

	out := make(chan Event, 16)
	go func() {
		defer close(out)

		select {
		case out <- Event{Initial: true}:
		case <-ctx.Done():
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-d.signals:
				if !ok {
					return
				}
				for _, ev := range d.handleSignal(sig, observed) {
					select {
					case out <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()
	return out
}

// handleSignal folds a PropertiesChanged signal into the cache and returns
// one tagged event per observed property the signal touched. Signals for
// other paths, interfaces, or members are ignored.
//
// When one signal changes several observed properties, events are emitted in
// the observation order passed to Watch; their relative order is otherwise
// unspecified, only that none is lost.
func (d *Device) handleSignal(sig *dbus.Signal, observed []Property) []Event {
	if sig == nil || sig.Name != signalPropertiesChanged || sig.Path != d.path {
		return nil
	}
	if len(sig.Body) < 3 {
		return nil
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != deviceInterface {
		return nil
	}
	changed, _ := sig.Body[1].(map[string]dbus.Variant)
	invalidated, _ := sig.Body[2].([]string)

	d.applyChanged(changed, invalidated)

	var events []Event
	for _, p := range observed {
		if _, ok := changed[string(p)]; ok {
			events = append(events, Event{Property: p})
		}
	}
	// An invalidation is still a change: the consumer re-reads and finds the
	// property absent.
	for _, name := range invalidated {
		for _, p := range observed {
			if string(p) == name {
				events = append(events, Event{Property: p})
			}
		}
	}
	return events
}
