package upower

import (
	"github.com/godbus/dbus/v5"
)

// D-Bus names for the UPower service.
const (
	BusName         = "org.freedesktop.UPower"
	upowerPath      = dbus.ObjectPath("/org/freedesktop/UPower")
	upowerInterface = "org.freedesktop.UPower"
	deviceInterface = "org.freedesktop.UPower.Device"

	propsInterface          = "org.freedesktop.DBus.Properties"
	signalPropertiesChanged = propsInterface + ".PropertiesChanged"
	methodGetAll            = propsInterface + ".GetAll"
	methodGetDisplayDevice  = upowerInterface + ".GetDisplayDevice"
)

// Property names a property on the org.freedesktop.UPower.Device interface.
type Property string

const (
	PropIconName    Property = "IconName"
	PropPercentage  Property = "Percentage"
	PropTimeToEmpty Property = "TimeToEmpty"
	PropTimeToFull  Property = "TimeToFull"
	PropState       Property = "State"
	PropIsPresent   Property = "IsPresent"
)

// State is the battery state reported by UPower's Device.State property.
type State uint32

const (
	StateUnknown State = iota
	StateCharging
	StateDischarging
	StateEmpty
	StateFullyCharged
	StatePendingCharge
	StatePendingDischarge
)

// String returns the human-readable state name.
func (s State) String() string {
	switch s {
	case StateCharging:
		return "charging"
	case StateDischarging:
		return "discharging"
	case StateEmpty:
		return "empty"
	case StateFullyCharged:
		return "fully charged"
	case StatePendingCharge:
		return "pending charge"
	case StatePendingDischarge:
		return "pending discharge"
	default:
		return "unknown"
	}
}

// Event is one entry of the merged change stream. Each underlying property
// change produces exactly one Event; the initial synthetic event produced
// right after subscription setup carries Initial=true and no property tag.
type Event struct {
	Property Property
	Initial  bool
}
