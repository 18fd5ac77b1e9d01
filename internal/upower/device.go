package upower

import (
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
)

// Device is a cached property proxy bound to UPower's display device.
// It keeps a local copy of the remote object's properties, primed with an
// initial GetAll and kept current by PropertiesChanged signals, so reads
// never need a synchronous round-trip.
//
// A Device is created once at startup and owned exclusively by the
// synchronizer for the process lifetime; there is no explicit teardown.
type Device struct {
	conn *dbus.Conn
	path dbus.ObjectPath
	obj  dbus.BusObject

	mu    sync.RWMutex
	cache map[Property]dbus.Variant

	signals chan *dbus.Signal
}

// ResolveDisplayDevice asks UPower for the object path of its display
// device (the aggregate/primary battery representation) and binds a cached
// property proxy to it. The match rule for PropertiesChanged is registered
// before the cache is primed, so no change between the two can be missed.
//
// A resolve failure is fatal to the synchronizer: the caller logs it and
// the snapshot stays at its defaults. There is no retry.
func ResolveDisplayDevice(conn *dbus.Conn) (*Device, error) {
	var path dbus.ObjectPath
	upower := conn.Object(BusName, upowerPath)
	if err := upower.Call(methodGetDisplayDevice, 0).Store(&path); err != nil {
		return nil, fmt.Errorf("failed to resolve display device: %w", err)
	}
	if !path.IsValid() || path == "/" {
		return nil, fmt.Errorf("UPower returned invalid display device path %q", path)
	}

	d := &Device{
		conn:    conn,
		path:    path,
		obj:     conn.Object(BusName, path),
		cache:   make(map[Property]dbus.Variant),
		signals: make(chan *dbus.Signal, 32),
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(path),
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		return nil, fmt.Errorf("failed to subscribe to property changes for %s: %w", path, err)
	}
	conn.Signal(d.signals)

	if err := d.primeCache(); err != nil {
		return nil, err
	}

	return d, nil
}

// Path returns the object path the proxy is bound to.
func (d *Device) Path() dbus.ObjectPath {
	return d.path
}

// primeCache populates the cache with the device's current properties.
func (d *Device) primeCache() error {
	var props map[string]dbus.Variant
	if err := d.obj.Call(methodGetAll, 0, deviceInterface).Store(&props); err != nil {
		return fmt.Errorf("failed to read properties of %s: %w", d.path, err)
	}

	d.mu.Lock()
	for name, value := range props {
		d.cache[Property(name)] = value
	}
	d.mu.Unlock()
	return nil
}

// applyChanged folds a PropertiesChanged payload into the cache. Changed
// properties overwrite the cached value; invalidated properties are dropped
// so subsequent reads report them as absent.
func (d *Device) applyChanged(changed map[string]dbus.Variant, invalidated []string) {
	d.mu.Lock()
	for name, value := range changed {
		d.cache[Property(name)] = value
	}
	for _, name := range invalidated {
		delete(d.cache, Property(name))
	}
	d.mu.Unlock()
}

// CachedString reads a string property from the cache. The second return is
// false when the property is absent (never seen or invalidated); an error
// means the cached value has an unexpected type.
func (d *Device) CachedString(p Property) (string, bool, error) {
	d.mu.RLock()
	v, ok := d.cache[p]
	d.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	s, ok := v.Value().(string)
	if !ok {
		return "", false, fmt.Errorf("property %s: unexpected type %T", p, v.Value())
	}
	return s, true, nil
}

// CachedFloat64 reads a double property from the cache.
func (d *Device) CachedFloat64(p Property) (float64, bool, error) {
	d.mu.RLock()
	v, ok := d.cache[p]
	d.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	f, ok := v.Value().(float64)
	if !ok {
		return 0, false, fmt.Errorf("property %s: unexpected type %T", p, v.Value())
	}
	return f, true, nil
}

// CachedInt64 reads an int64 property from the cache.
func (d *Device) CachedInt64(p Property) (int64, bool, error) {
	d.mu.RLock()
	v, ok := d.cache[p]
	d.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	n, ok := v.Value().(int64)
	if !ok {
		return 0, false, fmt.Errorf("property %s: unexpected type %T", p, v.Value())
	}
	return n, true, nil
}

// CachedUint32 reads a uint32 property from the cache.
func (d *Device) CachedUint32(p Property) (uint32, bool, error) {
	d.mu.RLock()
	v, ok := d.cache[p]
	d.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	n, ok := v.Value().(uint32)
	if !ok {
		return 0, false, fmt.Errorf("property %s: unexpected type %T", p, v.Value())
	}
	return n, true, nil
}

// CachedBool reads a boolean property from the cache.
func (d *Device) CachedBool(p Property) (bool, bool, error) {
	d.mu.RLock()
	v, ok := d.cache[p]
	d.mu.RUnlock()
	if !ok {
		return false, false, nil
	}
	b, ok := v.Value().(bool)
	if !ok {
		return false, false, fmt.Errorf("property %s: unexpected type %T", p, v.Value())
	}
	return b, true, nil
}

// Status is a one-shot decoded view of the display device, used by the CLI.
// The synchronizer does not use it; the widget works from cached reads only.
type Status struct {
	IconName    string
	Percentage  float64
	State       State
	TimeToEmpty time.Duration
	TimeToFull  time.Duration
	IsPresent   bool
}

// Status decodes the current cached properties into a Status. Absent or
// mistyped properties are left at their zero value; a battery widget showing
// partial data beats one showing nothing.
func (d *Device) Status() Status {
	var st Status
	if v, ok, err := d.CachedString(PropIconName); err == nil && ok {
		st.IconName = v
	}
	if v, ok, err := d.CachedFloat64(PropPercentage); err == nil && ok {
		st.Percentage = v
	}
	if v, ok, err := d.CachedUint32(PropState); err == nil && ok {
		st.State = State(v)
	}
	if v, ok, err := d.CachedInt64(PropTimeToEmpty); err == nil && ok && v > 0 {
		st.TimeToEmpty = time.Duration(v) * time.Second
	}
	if v, ok, err := d.CachedInt64(PropTimeToFull); err == nil && ok && v > 0 {
		st.TimeToFull = time.Duration(v) * time.Second
	}
	if v, ok, err := d.CachedBool(PropIsPresent); err == nil && ok {
		st.IsPresent = v
	}
	return st
}
