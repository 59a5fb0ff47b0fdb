package signals

import "time"

// Calendar is the holiday/seasonal oracle. It is pure computation over the
// date, no I/O.
type Calendar struct{}

func NewCalendar() Calendar {
	return Calendar{}
}

// Intensity returns seasonal travel pressure in [0,10] for the date.
func (Calendar) Intensity(date time.Time) float64 {
	md := monthDay(date)

	switch {
	// Thanksgiving week through the Sunday after.
	case inWindow(date, thanksgiving(date.Year()).AddDate(0, 0, -3), thanksgiving(date.Year()).AddDate(0, 0, 4)):
		return 10
	// Winter holidays.
	case md >= 1218 || md <= 102:
		return 9
	// Spring break band.
	case md >= 310 && md <= 331:
		return 6
	// Independence Day window.
	case md >= 701 && md <= 707:
		return 7
	// Summer peak.
	case md >= 615 && md <= 815:
		return 5
	// Memorial Day weekend.
	case inWindow(date, memorialDay(date.Year()).AddDate(0, 0, -3), memorialDay(date.Year()).AddDate(0, 0, 1)):
		return 7
	// Labor Day weekend.
	case inWindow(date, laborDay(date.Year()).AddDate(0, 0, -3), laborDay(date.Year()).AddDate(0, 0, 1)):
		return 7
	default:
		return 0
	}
}

// IsPeakDay reports whether the date sits in a window where load factors
// run above their observed averages.
func (c Calendar) IsPeakDay(date time.Time) bool {
	return c.Intensity(date) >= 5
}

func monthDay(date time.Time) int {
	return int(date.Month())*100 + date.Day()
}

func inWindow(date, from, to time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(from.Truncate(24*time.Hour)) && !d.After(to.Truncate(24*time.Hour))
}

// thanksgiving is the fourth Thursday of November.
func thanksgiving(year int) time.Time {
	return nthWeekday(year, time.November, time.Thursday, 4)
}

// memorialDay is the last Monday of May.
func memorialDay(year int) time.Time {
	d := time.Date(year, time.May, 31, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// laborDay is the first Monday of September.
func laborDay(year int) time.Time {
	return nthWeekday(year, time.September, time.Monday, 1)
}

func nthWeekday(year int, month time.Month, weekday time.Weekday, n int) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.AddDate(0, 0, 7*(n-1))
}
