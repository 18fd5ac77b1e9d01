// Package daemon provides supporting pieces for battrayd: the low-battery
// notifier that raises desktop notifications when the charge crosses the
// configured thresholds while draining.
package daemon
