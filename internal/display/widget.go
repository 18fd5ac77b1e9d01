package display

import (
	"fmt"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/battray/internal/battery"
	"github.com/jmylchreest/battray/internal/brightness"
)

// buildPopover constructs the dropdown shown when the panel button is
// clicked: battery status, brightness sliders, and the settings shortcut.
func (m *Manager) buildPopover() *gtk.Popover {
	box := gtk.NewBox(gtk.OrientationVertical, 8)
	box.AddCSSClass("battray-popover")

	box.Append(m.buildBatteryRow())
	box.Append(gtk.NewSeparator(gtk.OrientationHorizontal))

	box.Append(m.buildBrightnessRow("display-brightness-symbolic", brightness.TargetDisplay))
	box.Append(m.buildBrightnessRow("keyboard-brightness-symbolic", brightness.TargetKeyboard))

	box.Append(gtk.NewSeparator(gtk.OrientationHorizontal))
	box.Append(m.buildSettingsButton())

	popover := gtk.NewPopover()
	popover.SetChild(box)
	return popover
}

// buildBatteryRow creates the icon plus "Battery"/status line pair.
func (m *Manager) buildBatteryRow() gtk.Widgetter {
	row := gtk.NewBox(gtk.OrientationHorizontal, 8)
	row.AddCSSClass("battray-battery-row")

	m.batteryIcon = gtk.NewImage()
	m.batteryIcon.SetFromIconName(battery.DefaultIconName)
	m.batteryIcon.SetPixelSize(m.config.Display.IconSize * 2)
	row.Append(m.batteryIcon)

	labels := gtk.NewBox(gtk.OrientationVertical, 2)

	title := gtk.NewLabel("Battery")
	title.SetXAlign(0)
	title.AddCSSClass("battray-battery-title")
	labels.Append(title)

	m.statusLbl = gtk.NewLabel(battery.FormatRemaining(0, 0))
	m.statusLbl.SetXAlign(0)
	m.statusLbl.AddCSSClass("battray-battery-status")
	labels.Append(m.statusLbl)

	row.Append(labels)
	return row
}

// buildBrightnessRow creates an icon, slider, and percent label for one
// brightness target. Slider moves go to the sink; the label mirrors the
// recorded value so the row reflects what was requested.
func (m *Manager) buildBrightnessRow(iconName string, target brightness.Target) gtk.Widgetter {
	row := gtk.NewBox(gtk.OrientationHorizontal, 8)
	row.AddCSSClass("battray-brightness-row")

	icon := gtk.NewImageFromIconName(iconName)
	row.Append(icon)

	scale := gtk.NewScaleWithRange(gtk.OrientationHorizontal, 0, 100, 1)
	scale.SetHExpand(true)

	pctLbl := gtk.NewLabel("0%")
	pctLbl.SetXAlign(1)
	pctLbl.SetWidthChars(4)

	scale.ConnectValueChanged(func() {
		value := scale.Value()
		m.sink.Apply(brightness.Intent{Target: target, Percent: value})
		pctLbl.SetLabel(fmt.Sprintf("%.0f%%", value))
	})

	row.Append(scale)
	row.Append(pctLbl)
	return row
}

// buildSettingsButton creates the "Power Settings…" shortcut.
func (m *Manager) buildSettingsButton() gtk.Widgetter {
	btn := gtk.NewButtonWithLabel("Power Settings…")
	btn.AddCSSClass("battray-settings-button")
	btn.ConnectClicked(func() {
		m.spawnSettings()
	})
	return btn
}
