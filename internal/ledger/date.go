package ledger

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the dd.mm.yyyy format used in the grossbook date column.
	DateLayout = "02.01.2006"
	// ClockLayout is the hh:mm format used in the grossbook time column.
	ClockLayout = "15:04"
)

// ParseDate parses a dd.mm.yyyy date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate renders a time as a dd.mm.yyyy date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatClock renders a time as an hh:mm clock string.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// SameMonth reports whether two dates fall in the same calendar month of
// the same year. The day is ignored.
func SameMonth(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Year() == b.Year()
}
