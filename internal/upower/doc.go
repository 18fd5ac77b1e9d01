// Package upower talks to the org.freedesktop.UPower service on the system
// bus. It resolves the DisplayDevice (UPower's aggregate battery), keeps a
// client-side cache of its properties fed by PropertiesChanged signals, and
// merges per-property change notifications into a single event stream that
// drives snapshot recomputation.
package upower
