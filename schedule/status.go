package schedule

// =============================================================================
// PAYMENT STATUS - Derived from due date vs today
// =============================================================================

// Status classifies how a payment due date relates to the current day.
// Status is a derived value: it is recomputed on every read and never
// trusted from storage, because "today" moves.
type Status string

const (
	StatusUnknown  Status = "Unknown"
	StatusOverdue  Status = "Overdue"
	StatusDueToday Status = "Due Today"
	StatusDueSoon  Status = "Due Soon"
	StatusUpcoming Status = "Upcoming"
)

// AllStatuses lists every status in display order. Summary rollups use
// this so counts always cover all five buckets.
func AllStatuses() []Status {
	return []Status{StatusOverdue, StatusDueToday, StatusDueSoon, StatusUpcoming, StatusUnknown}
}

// dueSoonWindowDays is the inclusive window for Due Soon: a due date
// exactly 7 days out is Due Soon, 8 days out is Upcoming.
const dueSoonWindowDays = 7

// Classify maps a due date to a Status relative to today.
//
// Branch order matters: equality is checked before the window, so the
// four dated branches are mutually exclusive by construction.
func Classify(dueDate, today Date) Status {
	if dueDate.IsZero() || today.IsZero() {
		return StatusUnknown
	}
	switch {
	case dueDate.Before(today):
		return StatusOverdue
	case dueDate.Equal(today):
		return StatusDueToday
	case today.DaysUntil(dueDate) <= dueSoonWindowDays:
		return StatusDueSoon
	default:
		return StatusUpcoming
	}
}
