package kpi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSheet(year, month int) Sheet {
	return Sheet{
		ID:      "sheet-1",
		OwnerID: "owner-1",
		Year:    year,
		Month:   month,
		Status:  StatusDraft,
		Rows: []Row{
			{RowID: "jobs_filed", Label: "Jobs Filed", Type: RowTypeNumeric, DailyValues: DailyValues{}},
			{RowID: "dsr_sent", Label: "DSR Sent", Type: RowTypeCheckbox, DailyValues: DailyValues{}},
		},
		Signatories: Signatories{CheckedBy: "checker", VerifiedBy: "verifier", ApprovedBy: "approver"},
	}
}

// midMonth is safely before any month's deadline lock.
func midMonth(s Sheet) time.Time {
	return time.Date(s.Year, time.Month(s.Month), 10, 12, 0, 0, 0, time.UTC)
}

func TestIsSunday(t *testing.T) {
	// February 2025: the 2nd, 9th, 16th and 23rd are Sundays
	assert.True(t, IsSunday(2025, 2, 2))
	assert.True(t, IsSunday(2025, 2, 9))
	assert.False(t, IsSunday(2025, 2, 3))
	assert.False(t, IsSunday(2025, 2, 28))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 28, DaysIn(2025, 2))
	assert.Equal(t, 29, DaysIn(2024, 2))
	assert.Equal(t, 30, DaysIn(2025, 4))
	assert.Equal(t, 31, DaysIn(2025, 12))
}

func TestLastWorkingDay(t *testing.T) {
	// August 2025 ends on a Sunday, so the lock steps back to the 30th
	assert.Equal(t, 30, LastWorkingDay(2025, 8))
	// September 2025 ends on a Tuesday
	assert.Equal(t, 30, LastWorkingDay(2025, 9))
	assert.Equal(t, 28, LastWorkingDay(2025, 2))
}

func TestToggleMutualExclusion(t *testing.T) {
	var m DayMarks

	m.Toggle(10, DayClassFestival)
	assert.Equal(t, DayClassFestival, m.ClassOf(10))

	// Re-toggling to another class moves the day, it never ends up in two sets
	m.Toggle(10, DayClassHalfDay)
	assert.Equal(t, DayClassHalfDay, m.ClassOf(10))
	assert.NotContains(t, m.Festivals, 10)
	assert.NotContains(t, m.Holidays, 10)
	assert.Contains(t, m.HalfDays, 10)

	// Toggling the set class off returns the day to none
	m.Toggle(10, DayClassHalfDay)
	assert.Equal(t, DayClassNone, m.ClassOf(10))
	assert.Empty(t, m.HalfDays)
}

func TestToggleRandomSequenceKeepsInvariant(t *testing.T) {
	var m DayMarks
	classes := []DayClass{DayClassHoliday, DayClassFestival, DayClassHalfDay}
	for i := 0; i < 200; i++ {
		day := i%28 + 1
		m.Toggle(day, classes[i%3])

		for d := 1; d <= 28; d++ {
			sets := 0
			if containsDay(m.Holidays, d) {
				sets++
			}
			if containsDay(m.Festivals, d) {
				sets++
			}
			if containsDay(m.HalfDays, d) {
				sets++
			}
			require.LessOrEqual(t, sets, 1, "day %d in %d sets after toggle %d", d, sets, i)
		}
	}
}

func TestSundayUnaffectedByToggles(t *testing.T) {
	s := testSheet(2025, 2)
	require.True(t, IsSunday(s.Year, s.Month, 2))

	require.NoError(t, s.ToggleDay(2, DayClassHalfDay, midMonth(s)))
	assert.True(t, IsSunday(s.Year, s.Month, 2))
	assert.True(t, s.DayExcluded(2))
}

func TestRowTotalExcludesSundaysHolidaysFestivals(t *testing.T) {
	s := testSheet(2025, 2)
	now := midMonth(s)

	require.NoError(t, s.SetEntry("jobs_filed", 2, 4, now))  // Sunday
	require.NoError(t, s.SetEntry("jobs_filed", 3, 5, now))  // normal Monday
	require.NoError(t, s.SetEntry("jobs_filed", 4, 7, now))  // will become holiday
	require.NoError(t, s.SetEntry("jobs_filed", 5, 2, now))  // will become festival
	require.NoError(t, s.SetEntry("jobs_filed", 6, 3, now))  // will become half-day

	require.NoError(t, s.ToggleDay(4, DayClassHoliday, now))
	require.NoError(t, s.ToggleDay(5, DayClassFestival, now))
	require.NoError(t, s.ToggleDay(6, DayClassHalfDay, now))

	// Half-days still count; Sundays, holidays and festivals do not
	assert.Equal(t, 8.0, s.RowTotal(s.Rows[0]))

	// Recomputing is idempotent
	assert.Equal(t, s.RowTotal(s.Rows[0]), s.RowTotal(s.Rows[0]))
}

func TestColumnTotalZeroOnExcludedDays(t *testing.T) {
	s := testSheet(2025, 2)
	now := midMonth(s)

	require.NoError(t, s.SetEntry("jobs_filed", 2, 9, now))
	require.NoError(t, s.SetEntry("dsr_sent", 2, 1, now))
	require.NoError(t, s.SetEntry("jobs_filed", 3, 5, now))
	require.NoError(t, s.SetEntry("dsr_sent", 3, 1, now))

	assert.Equal(t, 0.0, s.ColumnTotal(2)) // Sunday, values present but ignored
	assert.Equal(t, 6.0, s.ColumnTotal(3))

	require.NoError(t, s.ToggleDay(3, DayClassFestival, now))
	assert.Equal(t, 0.0, s.ColumnTotal(3))

	require.NoError(t, s.ToggleDay(3, DayClassHalfDay, now))
	assert.Equal(t, 6.0, s.ColumnTotal(3))
}

// Scenario: fresh February sheet, day 2 marked holiday, value 5 on day 3.
func TestFebruaryScenario(t *testing.T) {
	s := testSheet(2025, 2)
	now := midMonth(s)

	require.NoError(t, s.ToggleDay(2, DayClassHoliday, now))
	require.NoError(t, s.SetEntry("jobs_filed", 3, 5, now))

	assert.Equal(t, 5.0, s.RowTotal(s.Rows[0]))
	assert.Equal(t, 0.0, s.ColumnTotal(2))
	assert.Equal(t, 5.0, s.ColumnTotal(3))
	assert.Equal(t, 5.0, s.GrandTotal())
}

func TestGrandTotalSumsRowTotals(t *testing.T) {
	s := testSheet(2025, 2)
	now := midMonth(s)

	require.NoError(t, s.SetEntry("jobs_filed", 3, 5, now))
	require.NoError(t, s.SetEntry("jobs_filed", 10, 2.5, now))
	require.NoError(t, s.SetEntry("dsr_sent", 3, 1, now))

	assert.Equal(t, 8.5, s.GrandTotal())
}

func TestEditableOnDeadline(t *testing.T) {
	s := testSheet(2025, 8) // last working day is Saturday the 30th

	onDeadline := time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC)
	afterDeadline := time.Date(2025, 8, 31, 8, 0, 0, 0, time.UTC)

	assert.True(t, s.EditableOn(onDeadline))
	assert.False(t, s.EditableOn(afterDeadline))

	assert.ErrorIs(t, s.SetEntry("jobs_filed", 3, 1, afterDeadline), ErrSheetLocked)
	assert.ErrorIs(t, s.ToggleDay(3, DayClassHoliday, afterDeadline), ErrSheetLocked)

	s.Status = StatusSubmitted
	assert.False(t, s.EditableOn(onDeadline))
}
