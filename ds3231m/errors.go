package ds3231m

import (
	"errors"
	"strconv"
)

var (
	ErrOutOfRange    = errors.New("ds3231m: value out of range")
	ErrTransport     = errors.New("ds3231m: bus transaction failed")
	ErrInvalidHandle = errors.New("ds3231m: invalid device handle")
	ErrUnsupported   = errors.New("ds3231m: not supported")
)

// RangeError is returned by the setters when a value is outside the field's range. No bus traffic happens in that
// case.
type RangeError struct {
	Field    Field
	Value    int
	Min, Max int
}

func (e *RangeError) Error() string {
	return "ds3231m: " + e.Field.String() + " " + strconv.Itoa(e.Value) +
		" out of range " + strconv.Itoa(e.Min) + ".." + strconv.Itoa(e.Max)
}

func (e *RangeError) Is(target error) bool { return target == ErrOutOfRange }

// TransportError wraps a failure reported by the I2C bus. The chip register may or may not have been written.
type TransportError struct {
	Op  string // "read" or "write"
	Reg uint8
	Err error
}

func (e *TransportError) Error() string {
	return "ds3231m: " + e.Op + " register 0x" + strconv.FormatUint(uint64(e.Reg), 16) + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
