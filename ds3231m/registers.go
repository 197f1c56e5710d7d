package ds3231m

const (
	Address      = 0x68 // I2C address for DS3231M
	Seconds      = 0x00 // Seconds, 00-59
	Minutes      = 0x01 // Minutes, 00-59
	Hours        = 0x02 // Hours, with 12/24-hour select in bit 6
	Day          = 0x03 // Day of week, 1-7
	Date         = 0x04 // Day of month, 01-31
	MonthCentury = 0x05 // Month, 01-12, century flag in bit 7
	Year         = 0x06 // Year within century, 00-99
	Control      = 0xE0 // Control register
	Status       = 0xF0 // Status register
)

// Bits of the hours register.
const (
	Hours12h = 0x40 // set: 12-hour mode with AM/PM, clear: 24-hour mode
	HoursPM  = 0x20 // PM in 12-hour mode, 20-hour digit in 24-hour mode
)

// Century flag of the month register, toggled by the chip when the year rolls over from 99.
const Century = 0x80

// masks selecting the BCD digits of each register
const (
	maskSeconds = 0x7F
	maskMinutes = 0x7F
	maskHours12 = 0x1F
	maskHours24 = 0x3F
	maskDay     = 0x07
	maskDate    = 0x3F
	maskMonth   = 0x1F
)
