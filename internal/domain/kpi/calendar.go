package kpi

import (
	"sort"
	"time"
)

// DayClass is the derived classification of a day. Exactly one of the three
// stored classes holds per day; Sunday is computed from the calendar and is
// never stored or toggled.
type DayClass string

const (
	DayClassNone     DayClass = ""
	DayClassHoliday  DayClass = "holiday"
	DayClassFestival DayClass = "festival"
	DayClassHalfDay  DayClass = "half_day"
)

// IsSunday reports whether the given day of the sheet month falls on Sunday.
func IsSunday(year, month, day int) bool {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Weekday() == time.Sunday
}

// DaysIn returns the number of calendar days in (year, month).
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// LastWorkingDay is the last calendar day of the month, stepped backward
// while it falls on Sunday. Sheets lock for editing after this day.
func LastWorkingDay(year, month int) int {
	day := DaysIn(year, month)
	for IsSunday(year, month, day) {
		day--
	}
	return day
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func removeDay(days []int, day int) []int {
	out := days[:0]
	for _, d := range days {
		if d != day {
			out = append(out, d)
		}
	}
	return out
}

// ClassOf returns the stored classification of a day.
func (m DayMarks) ClassOf(day int) DayClass {
	switch {
	case containsDay(m.Holidays, day):
		return DayClassHoliday
	case containsDay(m.Festivals, day):
		return DayClassFestival
	case containsDay(m.HalfDays, day):
		return DayClassHalfDay
	default:
		return DayClassNone
	}
}

// Toggle flips a day's classification. Turning a class on removes the day
// from the other two sets first; toggling the already-set class turns the
// day back to none. The mutual-exclusion invariant lives here, not in a
// separate validation pass.
func (m *DayMarks) Toggle(day int, class DayClass) {
	prev := m.ClassOf(day)

	m.Holidays = removeDay(m.Holidays, day)
	m.Festivals = removeDay(m.Festivals, day)
	m.HalfDays = removeDay(m.HalfDays, day)

	if prev == class {
		return
	}

	switch class {
	case DayClassHoliday:
		m.Holidays = append(m.Holidays, day)
		sort.Ints(m.Holidays)
	case DayClassFestival:
		m.Festivals = append(m.Festivals, day)
		sort.Ints(m.Festivals)
	case DayClassHalfDay:
		m.HalfDays = append(m.HalfDays, day)
		sort.Ints(m.HalfDays)
	}
}

// DayExcluded reports whether a day is excluded from totals: Sundays,
// holidays and festivals contribute nothing, half-days still count.
func (s *Sheet) DayExcluded(day int) bool {
	if IsSunday(s.Year, s.Month, day) {
		return true
	}
	class := s.Marks.ClassOf(day)
	return class == DayClassHoliday || class == DayClassFestival
}

// RowTotal sums a row's daily values over non-excluded days. Derived on
// every read; never a stored source of truth.
func (s *Sheet) RowTotal(row Row) float64 {
	var total float64
	for day, value := range row.DailyValues {
		if s.DayExcluded(day) {
			continue
		}
		total += value
	}
	return total
}

// ColumnTotal sums all rows' entries for one day; 0 for excluded days
// regardless of entered values.
func (s *Sheet) ColumnTotal(day int) float64 {
	if s.DayExcluded(day) {
		return 0
	}
	var total float64
	for _, row := range s.Rows {
		total += row.DailyValues[day]
	}
	return total
}

// GrandTotal is the sum of all row totals.
func (s *Sheet) GrandTotal() float64 {
	var total float64
	for _, row := range s.Rows {
		total += s.RowTotal(row)
	}
	return total
}

// Deadline returns the end of the sheet's last working day.
func (s *Sheet) Deadline() time.Time {
	day := LastWorkingDay(s.Year, s.Month)
	return time.Date(s.Year, time.Month(s.Month), day, 23, 59, 59, 0, time.UTC)
}

// EditableOn reports whether sheet contents may be modified at the given
// time: status must be DRAFT or REJECTED and the month's last working day
// must not have passed. This is the whole-sheet lock; there is no per-day
// or per-week lock.
func (s *Sheet) EditableOn(now time.Time) bool {
	return s.Status.Editable() && !now.After(s.Deadline())
}
