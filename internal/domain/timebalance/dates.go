package timebalance

import (
	"log/slog"
	"time"
)

const dayFormat = "2006-01-02"

// DayKey normalizes a timestamp to its calendar date key.
func DayKey(t time.Time) string {
	return t.Format(dayFormat)
}

func IsWeekday(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekdaySet collects the weekday dates of the given leave ranges clipped to
// [from, to]. Ranges with a zero start or end date are skipped, never fatal:
// one corrupt record must not abort a whole month.
func WeekdaySet(ranges []LeaveRange, from, to time.Time) map[string]struct{} {
	set := make(map[string]struct{})
	from = dayOf(from)
	to = dayOf(to)
	for _, r := range ranges {
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			slog.Warn("leave range with missing date skipped", "start", r.StartDate, "end", r.EndDate)
			continue
		}
		start := dayOf(r.StartDate)
		end := dayOf(r.EndDate)
		if end.Before(start) {
			slog.Warn("leave range with inverted dates skipped", "start", r.StartDate, "end", r.EndDate)
			continue
		}
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if IsWeekday(d) {
				set[DayKey(d)] = struct{}{}
			}
		}
	}
	return set
}

// HolidaySet collects holiday date keys inside [from, to].
func HolidaySet(holidays []Holiday, from, to time.Time) map[string]struct{} {
	set := make(map[string]struct{})
	from = dayOf(from)
	to = dayOf(to)
	for _, h := range holidays {
		if h.Date.IsZero() {
			slog.Warn("holiday with missing date skipped", "name", h.Name)
			continue
		}
		d := dayOf(h.Date)
		if d.Before(from) || d.After(to) {
			continue
		}
		set[DayKey(d)] = struct{}{}
	}
	return set
}

// WeekdayHolidayCount counts holidays in [from, to] that fall on a weekday.
func WeekdayHolidayCount(holidays []Holiday, from, to time.Time) int {
	count := 0
	seen := make(map[string]struct{})
	from = dayOf(from)
	to = dayOf(to)
	for _, h := range holidays {
		if h.Date.IsZero() {
			continue
		}
		d := dayOf(h.Date)
		if d.Before(from) || d.After(to) || !IsWeekday(d) {
			continue
		}
		key := DayKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		count++
	}
	return count
}

// WorkingDayCount counts weekdays in [from, to] that are not in the holiday
// set.
func WorkingDayCount(from, to time.Time, holidays map[string]struct{}) int {
	count := 0
	from = dayOf(from)
	to = dayOf(to)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if !IsWeekday(d) {
			continue
		}
		if _, holiday := holidays[DayKey(d)]; holiday {
			continue
		}
		count++
	}
	return count
}

func subtract(set, exclude map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for key := range set {
		if _, ok := exclude[key]; ok {
			continue
		}
		out[key] = struct{}{}
	}
	return out
}

func union(sets ...map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for _, set := range sets {
		for key := range set {
			out[key] = struct{}{}
		}
	}
	return out
}
