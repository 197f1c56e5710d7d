// Package hostbus provides the I2C transport for running the drivers in this module on a regular Linux host (e.g. a
// Raspberry Pi) instead of a TinyGo target, using periph.io to talk to /dev/i2c-*.
package hostbus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"
)

var _ drivers.I2C = (*Bus)(nil)

// Bus wraps a periph.io I2C bus so it can be handed to a driver.
type Bus struct {
	conn   i2c.Bus
	closer i2c.BusCloser
}

type Config struct {
	// Name of the bus, e.g. "/dev/i2c-1" or "1". Empty selects the first bus found.
	Name string
	// Speed of the bus. Zero leaves the kernel default.
	Speed physic.Frequency
}

// Open initialises the host drivers and opens the named bus.
func Open(c Config) (*Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("hostbus: init host: %w", err)
	}
	bc, err := i2creg.Open(c.Name)
	if err != nil {
		return nil, fmt.Errorf("hostbus: open %q: %w", c.Name, err)
	}
	if c.Speed != 0 {
		if err := bc.SetSpeed(c.Speed); err != nil {
			bc.Close()
			return nil, fmt.Errorf("hostbus: set speed %s: %w", c.Speed, err)
		}
	}
	return &Bus{conn: bc, closer: bc}, nil
}

// New wraps an already opened bus. Close on the result does not close b.
func New(b i2c.Bus) *Bus {
	return &Bus{conn: b}
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	return b.conn.Tx(addr, w, r)
}

func (b *Bus) String() string {
	return b.conn.String()
}

// Close releases the bus if it was opened by Open.
func (b *Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer.Close()
	b.closer = nil
	return err
}
