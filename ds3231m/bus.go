package ds3231m

import "github.com/ajanata/drivers/bcd"

// Single-byte register access. A read writes the register address and reads one byte after a repeated start; a
// write sends the register address followed by the data byte.

func (d *Device) read(reg uint8) (uint8, error) {
	if !d.valid() {
		return 0, ErrInvalidHandle
	}
	w := [1]byte{reg}
	buf := [1]byte{}
	if err := d.bus.Tx(d.Address, w[:], buf[:]); err != nil {
		return 0, &TransportError{Op: "read", Reg: reg, Err: err}
	}
	return buf[0], nil
}

func (d *Device) write(reg, data uint8) error {
	if !d.valid() {
		return ErrInvalidHandle
	}
	buf := [2]byte{reg, data}
	if err := d.bus.Tx(d.Address, buf[:], nil); err != nil {
		return &TransportError{Op: "write", Reg: reg, Err: err}
	}
	return nil
}

// ReadRegister returns the raw content of any register, e.g. Control or Status.
func (d *Device) ReadRegister(reg uint8) (uint8, error) {
	return d.read(reg)
}

func decodeField(f Field, raw uint8, m HourMode) int {
	r := registerMap[f]
	if f == FieldHours {
		r = hoursRegister(m)
	}
	return bcd.Decode(raw & r.mask)
}
