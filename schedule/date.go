/*
Package schedule provides calendar-day date handling and payment
scheduling logic.

PURPOSE:
  This package contains the pure, dependency-free core of the payment
  tracker: a day-granularity Date type, due-date calculation, and the
  payment status classifier. Everything here is a total function over
  its arguments - no I/O, no hidden clock reads.

KEY CONCEPTS IN THIS FILE (date.go):
  - Date: A calendar day. The zero value means "absent" - a date that
    was never supplied or failed to parse.
  - Clock: Supplies "today". Injected so tests and callers control time.

LENIENT PARSING:
  Tenant records come from free-form storage where date cells may be
  empty or garbage. ParseDate never returns an error: anything that is
  not a valid date maps to the absent Date. Downstream logic (due-date
  calculation, status classification) treats absent as "unknown" rather
  than failing.

USAGE:
  prev := schedule.ParseDate("2024-05-01")
  due := schedule.NextDueDate(prev, schedule.FrequencyMonthly)
  status := schedule.Classify(due, clock.Today())

SEE ALSO:
  - duedate.go: Due-date calculation and payment frequencies
  - status.go: Payment status classification
*/
package schedule

import (
	"time"
)

// =============================================================================
// DATE - Calendar day with an explicit "absent" state
// =============================================================================

// Date is a calendar day at UTC midnight. The zero Date is "absent".
type Date struct {
	Time time.Time
}

// NewDate constructs a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// dateLayouts are tried in order when parsing. The first is the
// serialization format; the rest tolerate timestamps that carry a time
// component.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// ParseDate parses a date string leniently. Empty or unparseable input
// returns the absent Date; parse failures are never surfaced as errors.
func ParseDate(s string) Date {
	if s == "" {
		return Date{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day())
		}
	}
	return Date{}
}

// Comparison
func (d Date) Before(other Date) bool { return d.normalize().Before(other.normalize()) }
func (d Date) Equal(other Date) bool  { return d.normalize().Equal(other.normalize()) }
func (d Date) After(other Date) bool  { return d.normalize().After(other.normalize()) }
func (d Date) IsZero() bool           { return d.Time.IsZero() }

func (d Date) normalize() time.Time {
	return time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n calendar days later. No timezone or
// business-day logic: this is plain calendar arithmetic.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// DaysUntil returns the number of calendar days from d to other.
// Negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.normalize().Sub(d.normalize()).Hours() / 24)
}

// String formats as YYYY-MM-DD, or "" for the absent Date. This is the
// serialization format for persisted storage.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// =============================================================================
// CLOCK - Source of "today"
// =============================================================================

// Clock supplies the current calendar day. Status classification must
// read it fresh per call - "today" is never cached.
type Clock interface {
	Today() Date
}

// SystemClock reads the OS clock.
type SystemClock struct{}

func (SystemClock) Today() Date {
	now := time.Now()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// FixedClock always returns the same day. For tests and replays.
type FixedClock struct {
	Day Date
}

func (c FixedClock) Today() Date { return c.Day }
