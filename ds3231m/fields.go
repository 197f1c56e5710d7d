package ds3231m

import "strings"

// Field identifies one time or date register of the chip.
type Field uint8

const (
	FieldSeconds Field = iota
	FieldMinutes
	FieldHours
	FieldDay
	FieldDate
	FieldMonth
	FieldYear
)

var fieldNames = [...]string{
	FieldSeconds: "seconds",
	FieldMinutes: "minutes",
	FieldHours:   "hours",
	FieldDay:     "day",
	FieldDate:    "date",
	FieldMonth:   "month",
	FieldYear:    "year",
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

// ParseField looks a field up by its String name.
func ParseField(s string) (Field, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range fieldNames {
		if s == name {
			return Field(f), true
		}
	}
	return 0, false
}

// Register returns the register address backing the field.
func (f Field) Register() uint8 {
	return registerMap[f].reg
}

// HourMode is the clock format selected by bit 6 of the hours register.
type HourMode uint8

const (
	TwentyFourHour HourMode = iota
	TwelveHour
)

func (m HourMode) String() string {
	if m == TwelveHour {
		return "12h"
	}
	return "24h"
}

func hourModeOf(raw uint8) HourMode {
	if raw&Hours12h != 0 {
		return TwelveHour
	}
	return TwentyFourHour
}

// Weekday is the value of the day register. The chip only requires the values to be sequential; this driver uses
// Monday as day 1.
type Weekday uint8

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (d Weekday) String() string {
	if d.Valid() {
		return weekdayNames[d]
	}
	return "invalid"
}

// Valid reports whether d is one of Monday..Sunday.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

// ParseWeekday accepts a full or three-letter day name, in any case.
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, false
	}
	for d := Monday; d <= Sunday; d++ {
		name := strings.ToLower(weekdayNames[d])
		if s == name || s == name[:3] {
			return d, true
		}
	}
	return 0, false
}

// register describes how a field is stored: where, which bits, and which decimal values are legal.
type register struct {
	reg      uint8
	mask     uint8
	min, max int
}

var registerMap = [...]register{
	FieldSeconds: {reg: Seconds, mask: maskSeconds, min: 0, max: 59},
	FieldMinutes: {reg: Minutes, mask: maskMinutes, min: 0, max: 59},
	// range and mask depend on the hour mode, see hoursRegister
	FieldHours: {reg: Hours, mask: maskHours24, min: 0, max: 23},
	FieldDay:   {reg: Day, mask: maskDay, min: int(Monday), max: int(Sunday)},
	FieldDate:  {reg: Date, mask: maskDate, min: 1, max: 31},
	FieldMonth: {reg: MonthCentury, mask: maskMonth, min: 1, max: 12},
	FieldYear:  {reg: Year, mask: 0xFF, min: 0, max: 99},
}

func hoursRegister(m HourMode) register {
	if m == TwelveHour {
		return register{reg: Hours, mask: maskHours12, min: 1, max: 12}
	}
	return registerMap[FieldHours]
}

// Range returns the closed interval of decimal values accepted for the field. The hours range depends on mode and
// is ignored for every other field.
func (f Field) Range(m HourMode) (min, max int) {
	r := registerMap[f]
	if f == FieldHours {
		r = hoursRegister(m)
	}
	return r.min, r.max
}
