package ds3231m

import (
	"errors"

	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*fakeI2C)(nil)

var errBus = errors.New("bus: nack")

type regWrite struct {
	Reg  uint8
	Data uint8
}

// fakeI2C is a register file behind a fake I2C bus. Reads and writes can be made to fail per register.
type fakeI2C struct {
	addr      uint16
	regs      [256]uint8
	readErr   map[uint8]error
	writeErr  error
	writes    []regWrite
	reads     []uint8
	wrongAddr int
}

func newFakeI2C() *fakeI2C {
	return &fakeI2C{addr: Address, readErr: map[uint8]error{}}
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if addr != f.addr {
		f.wrongAddr++
		return errBus
	}
	if len(w) == 0 {
		return errBus
	}
	reg := w[0]
	if len(r) > 0 {
		f.reads = append(f.reads, reg)
		if err := f.readErr[reg]; err != nil {
			return err
		}
		for i := range r {
			r[i] = f.regs[reg+uint8(i)]
		}
		return nil
	}
	for i, b := range w[1:] {
		f.writes = append(f.writes, regWrite{Reg: reg + uint8(i), Data: b})
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	for i, b := range w[1:] {
		f.regs[reg+uint8(i)] = b
	}
	return nil
}

// set12h puts the chip in 12-hour mode at the given hour and meridiem.
func (f *fakeI2C) set12h(hour uint8, pm bool) {
	f.regs[Hours] = Hours12h | hour
	if pm {
		f.regs[Hours] |= HoursPM
	}
}
