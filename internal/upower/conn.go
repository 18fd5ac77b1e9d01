package upower

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// Connect opens a connection to the system bus.
//
// A connect failure is fatal to the synchronizer (no device updates are
// possible without the bus) but callers must treat it as a degraded state,
// not a crash: the widget stays on its default snapshot.
func Connect() (*dbus.Conn, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	return conn, nil
}
