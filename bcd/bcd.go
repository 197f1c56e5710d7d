// Package bcd converts between packed binary-coded decimal bytes, as used by most RTC chips, and plain integers.
//
// A packed BCD byte stores the tens digit in the high nibble and the ones digit in the low nibble, so 45 is 0x45.
package bcd

// Decode converts a packed BCD byte to its decimal value. It does not check that each nibble is a valid digit; use
// Valid for that.
func Decode(b byte) int {
	return int(b>>4)*10 + int(b&0x0F)
}

// Encode converts d, which must be in 0..99, to packed BCD.
func Encode(d int) byte {
	// tens digit in the high nibble, ones digit or-ed into the low nibble
	return byte(d/10)<<4 | byte(d%10)
}

// Valid reports whether both nibbles of b are decimal digits.
func Valid(b byte) bool {
	return b>>4 <= 9 && b&0x0F <= 9
}
