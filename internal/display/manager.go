package display

import (
	"log/slog"
	"os/exec"
	"strings"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/battray/internal/battery"
	"github.com/jmylchreest/battray/internal/brightness"
	"github.com/jmylchreest/battray/internal/config"
)

// Manager owns the widget window. It receives snapshots from the daemon
// (already marshalled onto the GTK main loop) and forwards brightness
// intents from the sliders to the sink.
type Manager struct {
	app    *gtk.Application
	config *config.Config
	sink   brightness.Sink
	logger *slog.Logger

	window *gtk.Window
	button *gtk.MenuButton

	// Popover widgets updated from snapshots
	batteryIcon *gtk.Image
	statusLbl   *gtk.Label

	started bool
}

// NewManager creates a new display manager.
func NewManager(app *gtk.Application, cfg *config.Config, sink brightness.Sink, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &Manager{
		app:    app,
		config: cfg,
		sink:   sink,
		logger: logger,
	}
}

// Start builds and presents the widget window.
func (m *Manager) Start() error {
	m.window = gtk.NewWindow()
	m.window.SetApplication(m.app)
	m.window.SetDecorated(false)
	m.window.SetResizable(false)

	layershell.InitForWindow(m.window)
	layershell.SetLayer(m.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(m.window, 0)
	layershell.SetKeyboardMode(m.window, layershell.LayerShellKeyboardModeNone)
	layershell.SetNamespace(m.window, "battray")
	m.applyPosition()

	m.button = gtk.NewMenuButton()
	m.button.SetHasFrame(false)
	m.button.SetIconName(battery.DefaultIconName)
	m.button.SetPopover(m.buildPopover())

	m.window.SetChild(m.button)
	m.window.Present()

	m.started = true
	m.logger.Info("display manager started")
	return nil
}

// Stop closes the widget window.
func (m *Manager) Stop() {
	if m.window != nil {
		m.window.Close()
		m.window = nil
	}
	m.started = false
	m.logger.Info("display manager stopped")
}

// Update applies a snapshot to the widget. The snapshot is a value copy;
// the manager never shares state with the synchronizer.
func (m *Manager) Update(snap battery.Snapshot) {
	if !m.started {
		return
	}

	icon := snap.IconName
	if icon == "" {
		icon = battery.DefaultIconName
	}
	m.button.SetIconName(icon)
	m.batteryIcon.SetFromIconName(icon)
	m.statusLbl.SetLabel(battery.FormatRemaining(snap.TimeRemaining, snap.Percent))
}

// UpdateConfig applies a reloaded configuration.
func (m *Manager) UpdateConfig(cfg *config.Config) {
	m.config = cfg
	if !m.started {
		return
	}
	m.applyPosition()
	m.batteryIcon.SetPixelSize(cfg.Display.IconSize * 2)
}

// applyPosition anchors the window to the configured screen corner.
func (m *Manager) applyPosition() {
	for _, edge := range []layershell.LayerShellEdge{
		layershell.LayerShellEdgeTop,
		layershell.LayerShellEdgeBottom,
		layershell.LayerShellEdgeLeft,
		layershell.LayerShellEdgeRight,
	} {
		layershell.SetAnchor(m.window, edge, false)
		layershell.SetMargin(m.window, edge, 0)
	}

	marginX := m.config.Display.MarginX
	marginY := m.config.Display.MarginY

	switch m.config.Display.Position {
	case config.PositionTopLeft:
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeTop, marginY)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeLeft, marginX)
	case config.PositionBottomLeft:
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeBottom, true)
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeLeft, true)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeBottom, marginY)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeLeft, marginX)
	case config.PositionBottomRight:
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeBottom, true)
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeBottom, marginY)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeRight, marginX)
	default: // top-right
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeTop, true)
		layershell.SetAnchor(m.window, layershell.LayerShellEdgeRight, true)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeTop, marginY)
		layershell.SetMargin(m.window, layershell.LayerShellEdgeRight, marginX)
	}
}

// spawnSettings launches the configured settings command, detached.
func (m *Manager) spawnSettings() {
	fields := strings.Fields(m.config.Settings.Command)
	if len(fields) == 0 {
		return
	}
	cmd := exec.Command(fields[0], fields[1:]...)
	if err := cmd.Start(); err != nil {
		m.logger.Warn("failed to launch settings", "command", m.config.Settings.Command, "error", err)
		return
	}
	go func() { _ = cmd.Wait() }()
}
