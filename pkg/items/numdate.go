package items

import "fmt"

// Date is a calendar date (no time component).
type Date struct {
	Year, Month, Day int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time is a wall-clock time with fractional seconds to 6 digits.
type Time struct {
	Hour, Minute, Second int
	// MicroSecond is the fractional part in microseconds (0-999999): the
	// lexeme's fraction digits padded with trailing zeros to 6 digits, so
	// ".5" is 500000.
	MicroSecond int
	// FracDigits is how many fractional digits the original lexeme used
	// (0 when there was no fraction at all), so the emitter can
	// re-truncate to the same width when re-formatting from value alone.
	FracDigits int
}

func (t Time) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
	if t.FracDigits > 0 {
		frac := fmt.Sprintf("%06d", t.MicroSecond)
		s += "." + frac[:t.FracDigits]
	}
	return s
}

// DateTime is a date plus an optional time and an optional timezone
// offset.
type DateTime struct {
	Date Date
	// HasTime is false for a date-only value.
	HasTime bool
	Time    Time
	// HasOffset is false for a "local" datetime with no timezone info.
	HasOffset bool
	// OffsetZ is true when the offset was written as a literal 'Z'.
	OffsetZ bool
	// OffsetMinutes is the signed offset from UTC in minutes (ignored
	// when OffsetZ is true).
	OffsetMinutes int
}

func (dt DateTime) String() string {
	if !dt.HasTime {
		return dt.Date.String()
	}
	s := dt.Date.String() + " " + dt.Time.String()
	if !dt.HasOffset {
		return s
	}
	if dt.OffsetZ {
		return s + "Z"
	}
	sign := "+"
	m := dt.OffsetMinutes
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s%s%02d:%02d", s, sign, m/60, m%60)
}
