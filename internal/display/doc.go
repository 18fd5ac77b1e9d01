// Package display renders the battery widget with GTK4/libadwaita.
// It builds the panel button anchored via Wayland layer-shell and the
// popover with battery status, brightness sliders, and the settings
// shortcut. It is a read-only consumer of battery snapshots; all methods
// must be called from the GTK main loop.
package display
