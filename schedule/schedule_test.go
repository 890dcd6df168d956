package schedule_test

import (
	"testing"
	"time"

	"github.com/warp/tenancy-engine/schedule"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) schedule.Date {
	return schedule.NewDate(year, month, day)
}

// =============================================================================
// DATE PARSING
// =============================================================================

func TestParseDate_ValidISO(t *testing.T) {
	d := schedule.ParseDate("2024-05-01")
	if d.IsZero() {
		t.Fatal("expected valid date")
	}
	if d.String() != "2024-05-01" {
		t.Errorf("expected 2024-05-01, got %s", d.String())
	}
}

func TestParseDate_Lenient(t *testing.T) {
	// Unparseable input maps to absent, never to an error.
	cases := []string{"", "not-a-date", "2024-13-45", "31/05/2024"}
	for _, s := range cases {
		if d := schedule.ParseDate(s); !d.IsZero() {
			t.Errorf("ParseDate(%q) should be absent, got %s", s, d)
		}
	}
}

func TestParseDate_TimestampTolerated(t *testing.T) {
	d := schedule.ParseDate("2024-05-01 13:45:00")
	if d.String() != "2024-05-01" {
		t.Errorf("timestamp should truncate to day, got %s", d)
	}
}

// =============================================================================
// DUE DATE CALCULATION
// =============================================================================

func TestNextDueDate_AddsExactDays(t *testing.T) {
	cases := []struct {
		prev     schedule.Date
		freq     schedule.Frequency
		expected string
	}{
		{date(2024, time.May, 1), schedule.FrequencyMonthly, "2024-05-31"},
		{date(2024, time.May, 1), schedule.FrequencyQuarterly, "2024-07-30"},
		{date(2024, time.December, 25), schedule.Frequency(10), "2025-01-04"}, // year boundary
		{date(2024, time.February, 1), schedule.Frequency(30), "2024-03-02"},  // leap year
		{date(2023, time.February, 1), schedule.Frequency(30), "2023-03-03"},  // non-leap
	}
	for _, c := range cases {
		got := schedule.NextDueDate(c.prev, c.freq)
		if got.String() != c.expected {
			t.Errorf("NextDueDate(%s, %d) = %s, want %s", c.prev, c.freq, got, c.expected)
		}
	}
}

func TestNextDueDate_AbsentReference(t *testing.T) {
	got := schedule.NextDueDate(schedule.Date{}, schedule.FrequencyMonthly)
	if !got.IsZero() {
		t.Errorf("absent reference should yield absent due date, got %s", got)
	}
}

func TestCustomFrequency_Bounds(t *testing.T) {
	if _, err := schedule.CustomFrequency(45); err != nil {
		t.Errorf("45 days should be valid: %v", err)
	}
	if _, err := schedule.CustomFrequency(0); err == nil {
		t.Error("0 days should be rejected")
	}
	if _, err := schedule.CustomFrequency(366); err == nil {
		t.Error("366 days should be rejected")
	}
}

// =============================================================================
// STATUS CLASSIFICATION
// =============================================================================

func TestClassify_FixedToday(t *testing.T) {
	// GIVEN: today = 2024-06-10
	today := date(2024, time.June, 10)

	cases := []struct {
		due      schedule.Date
		expected schedule.Status
	}{
		{date(2024, time.June, 9), schedule.StatusOverdue},
		{date(2024, time.June, 10), schedule.StatusDueToday},
		{date(2024, time.June, 15), schedule.StatusDueSoon},  // 5 days out
		{date(2024, time.June, 20), schedule.StatusUpcoming}, // 10 days out
		{schedule.Date{}, schedule.StatusUnknown},
	}
	for _, c := range cases {
		if got := schedule.Classify(c.due, today); got != c.expected {
			t.Errorf("Classify(%s, %s) = %s, want %s", c.due, today, got, c.expected)
		}
	}
}

func TestClassify_WindowBoundary(t *testing.T) {
	// The Due Soon window is inclusive of exactly 7 days.
	today := date(2024, time.June, 10)

	if got := schedule.Classify(today.AddDays(7), today); got != schedule.StatusDueSoon {
		t.Errorf("due in 7 days should be Due Soon, got %s", got)
	}
	if got := schedule.Classify(today.AddDays(8), today); got != schedule.StatusUpcoming {
		t.Errorf("due in 8 days should be Upcoming, got %s", got)
	}
}

func TestClassify_FarOverdue(t *testing.T) {
	today := date(2024, time.June, 10)
	if got := schedule.Classify(date(2023, time.January, 1), today); got != schedule.StatusOverdue {
		t.Errorf("old due date should be Overdue, got %s", got)
	}
}

func TestFixedClock(t *testing.T) {
	clock := schedule.FixedClock{Day: date(2024, time.June, 10)}
	if !clock.Today().Equal(date(2024, time.June, 10)) {
		t.Error("fixed clock should return its day")
	}
}
