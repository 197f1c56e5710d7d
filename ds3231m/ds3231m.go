// Package ds3231m implements a driver for the DS3231M Real-Time Clock (RTC), providing register-level read-write of
// the time and date fields. Values are always handled in decimal; the driver converts to and from the chip's packed
// BCD encoding and validates every value before it reaches the bus. Alarms, the square-wave output and the aging
// offset are not implemented.
//
// The driver does no locking. Callers that share a Device between goroutines must serialise access themselves.
//
// Datasheet: https://www.analog.com/media/en/technical-documentation/data-sheets/DS3231M.pdf
package ds3231m

import (
	"tinygo.org/x/drivers"
)

// Device is a handle to one DS3231M on an I2C bus.
type Device struct {
	bus     drivers.I2C
	Address uint16

	state State
}

type Config struct {
	// Address defaults to 0x68 if zero.
	Address uint16
}

// State is the last time and date read from the chip, in decimal. It is only updated by Refresh and Probe; the
// setters never touch it, so a caller must re-read to see a committed value.
type State struct {
	Seconds int
	Minutes int
	Hours   int
	Day     Weekday
	Date    int
	// Mode is taken from the hours register on every read.
	Mode HourMode
	// PM is only meaningful in 12-hour mode.
	PM bool
}

// New creates a new DS3231M driver on the specified preconfigured I2C bus. It does not touch the device, and the
// State starts zeroed until the first Refresh.
func New(bus drivers.I2C) *Device {
	return &Device{
		bus:     bus,
		Address: Address,
	}
}

func (d *Device) Configure(c Config) error {
	if !d.valid() {
		return ErrInvalidHandle
	}
	if c.Address == 0 {
		c.Address = Address
	}
	d.Address = c.Address
	return nil
}

// Detach releases the bus. Every later call on d returns ErrInvalidHandle.
func (d *Device) Detach() {
	if d == nil {
		return
	}
	d.bus = nil
	d.state = State{}
}

// State returns a copy of the cached time and date.
func (d *Device) State() State {
	if d == nil {
		return State{}
	}
	return d.state
}

// HourMode returns the clock format seen on the last successful read.
func (d *Device) HourMode() HourMode {
	return d.State().Mode
}

func (d *Device) valid() bool {
	return d != nil && d.bus != nil
}

// Refresh reads seconds, minutes, hours, day and date from the chip. The cached State is replaced only if every read
// succeeds; otherwise it is left as it was and the first error is returned.
func (d *Device) Refresh() error {
	if !d.valid() {
		return ErrInvalidHandle
	}
	var raw [len(snapshotFields)]uint8
	for i, f := range snapshotFields {
		v, err := d.read(f.Register())
		if err != nil {
			return err
		}
		raw[i] = v
	}
	d.state = decodeState(raw)
	return nil
}

// snapshotFields are the registers mirrored in State, in read order.
var snapshotFields = [...]Field{FieldSeconds, FieldMinutes, FieldHours, FieldDay, FieldDate}

func decodeState(raw [len(snapshotFields)]uint8) State {
	h := raw[2]
	s := State{
		Seconds: decodeField(FieldSeconds, raw[0], TwentyFourHour),
		Minutes: decodeField(FieldMinutes, raw[1], TwentyFourHour),
		Mode:    hourModeOf(h),
		Day:     Weekday(decodeField(FieldDay, raw[3], TwentyFourHour)),
		Date:    decodeField(FieldDate, raw[4], TwentyFourHour),
	}
	s.Hours = decodeField(FieldHours, h, s.Mode)
	s.PM = s.Mode == TwelveHour && h&HoursPM != 0
	return s
}
