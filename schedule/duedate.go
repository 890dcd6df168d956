package schedule

import "fmt"

// =============================================================================
// FREQUENCY - Interval between payments, in days
// =============================================================================

// Frequency is the number of days between payments.
type Frequency int

const (
	FrequencyMonthly   Frequency = 30
	FrequencyQuarterly Frequency = 90
)

// Custom frequency bounds, matching the original input range.
const (
	minCustomDays = 1
	maxCustomDays = 365
)

// CustomFrequency validates a caller-supplied interval.
func CustomFrequency(days int) (Frequency, error) {
	if days < minCustomDays || days > maxCustomDays {
		return 0, fmt.Errorf("payment frequency must be between %d and %d days, got %d",
			minCustomDays, maxCustomDays, days)
	}
	return Frequency(days), nil
}

func (f Frequency) Days() int { return int(f) }

// =============================================================================
// DUE DATE CALCULATION
// =============================================================================

// NextDueDate returns the next payment due date: the previous payment
// date advanced by the frequency in calendar days. An absent previous
// date yields an absent due date - the caller is never failed over a
// missing date.
func NextDueDate(previousPayment Date, frequency Frequency) Date {
	if previousPayment.IsZero() {
		return Date{}
	}
	return previousPayment.AddDays(frequency.Days())
}
