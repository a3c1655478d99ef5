package budget

import (
	"errors"
	"fmt"

	"github.com/grossbook-dev/grossbook/internal/model"
)

// ErrConfigUnavailable marks a scheduled-payments read that failed even
// after a local retry.
var ErrConfigUnavailable = errors.New("budget plan unavailable")

// ScheduledPaymentsForDay returns the expense entries whose due-day equals
// day. Unlike the cached aggregates it re-reads the raw budget file on
// every call, so the daily reminder reflects plan edits made after the
// process started. A transient read failure is retried once before being
// surfaced as ErrConfigUnavailable.
func (p *Plan) ScheduledPaymentsForDay(day int) ([]model.CategoryEntry, error) {
	raw, err := readRaw(p.path)
	if err != nil {
		raw, err = readRaw(p.path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}

	var due []model.CategoryEntry
	for _, re := range raw.Expenses {
		if re.DueDay != day {
			continue
		}
		entry, err := parseEntry(re)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
		}
		due = append(due, entry)
	}
	return due, nil
}
