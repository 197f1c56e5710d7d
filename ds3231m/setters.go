package ds3231m

import "github.com/ajanata/drivers/bcd"

// SetSeconds writes the seconds register. Like all setters it does not update State.
func (d *Device) SetSeconds(v int) error {
	return d.set(FieldSeconds, v)
}

func (d *Device) SetMinutes(v int) error {
	return d.set(FieldMinutes, v)
}

// SetHours writes the hours register. The accepted range follows the hour mode cached by the last Refresh or
// Probe: 1..12 in 12-hour mode, 0..23 in 24-hour mode. In 12-hour mode the mode flag and the cached AM/PM bit are
// written back unchanged.
func (d *Device) SetHours(v int) error {
	if !d.valid() {
		return ErrInvalidHandle
	}
	m := d.state.Mode
	r := hoursRegister(m)
	if v < 0 || v < r.min || v > r.max {
		return &RangeError{Field: FieldHours, Value: v, Min: r.min, Max: r.max}
	}
	data := bcd.Encode(v)
	if m == TwelveHour {
		data |= Hours12h
		if d.state.PM {
			data |= HoursPM
		}
	}
	return d.write(Hours, data)
}

func (d *Device) SetDay(day Weekday) error {
	return d.set(FieldDay, int(day))
}

// SetDate writes the day of month. It is not checked against the length of the current month.
func (d *Device) SetDate(v int) error {
	return d.set(FieldDate, v)
}

// SetMonth writes the month with the century flag cleared.
func (d *Device) SetMonth(v int) error {
	return d.set(FieldMonth, v)
}

// SetYear is not implemented yet.
func (d *Device) SetYear(v int) error {
	if !d.valid() {
		return ErrInvalidHandle
	}
	return ErrUnsupported
}

// Set writes a single field by name, dispatching to the matching setter.
func (d *Device) Set(f Field, v int) error {
	switch f {
	case FieldHours:
		return d.SetHours(v)
	case FieldYear:
		return d.SetYear(v)
	case FieldSeconds, FieldMinutes, FieldDay, FieldDate, FieldMonth:
		return d.set(f, v)
	default:
		return ErrUnsupported
	}
}

func (d *Device) set(f Field, v int) error {
	if !d.valid() {
		return ErrInvalidHandle
	}
	r := registerMap[f]
	if v < r.min || v > r.max {
		return &RangeError{Field: f, Value: v, Min: r.min, Max: r.max}
	}
	return d.write(r.reg, bcd.Encode(v))
}
