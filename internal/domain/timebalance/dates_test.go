package timebalance

import (
	"testing"
	"time"
)

func TestWeekdaySetClipsAndSkipsWeekends(t *testing.T) {
	// June 6 (Thu) through June 10 (Mon) clipped to the first week.
	set := WeekdaySet([]LeaveRange{
		{StartDate: date(2024, time.June, 6), EndDate: date(2024, time.June, 10)},
	}, june2024Start, date(2024, time.June, 7))

	if len(set) != 2 {
		t.Fatalf("expected 2 days after clipping, got %d", len(set))
	}
	for _, key := range []string{"2024-06-06", "2024-06-07"} {
		if _, ok := set[key]; !ok {
			t.Fatalf("missing %s", key)
		}
	}
}

func TestWeekdaySetOverlapCountsOnce(t *testing.T) {
	set := WeekdaySet([]LeaveRange{
		{StartDate: date(2024, time.June, 3), EndDate: date(2024, time.June, 5)},
		{StartDate: date(2024, time.June, 4), EndDate: date(2024, time.June, 6)},
	}, june2024Start, june2024End)

	if len(set) != 4 {
		t.Fatalf("expected 4 distinct days, got %d", len(set))
	}
}

func TestWorkingDayCount(t *testing.T) {
	holidays := HolidaySet([]Holiday{
		{Date: date(2024, time.June, 3), Name: "Whit Monday"},
		{Date: date(2024, time.June, 8), Name: "Saturday holiday"}, // weekend, no effect
	}, june2024Start, june2024End)

	if got := WorkingDayCount(june2024Start, june2024End, holidays); got != 19 {
		t.Fatalf("expected 19 working days, got %d", got)
	}
	if got := WorkingDayCount(june2024Start, june2024End, nil); got != 20 {
		t.Fatalf("expected 20 working days without holidays, got %d", got)
	}
}

func TestWeekdayHolidayCountDeduplicates(t *testing.T) {
	holidays := []Holiday{
		{Date: date(2024, time.June, 3), Name: "regional"},
		{Date: date(2024, time.June, 3), Name: "national"},
		{Date: date(2024, time.June, 8), Name: "weekend"},
		{Name: "no date"},
	}
	if got := WeekdayHolidayCount(holidays, june2024Start, june2024End); got != 1 {
		t.Fatalf("expected 1 weekday holiday, got %d", got)
	}
}

func TestDayKeyNormalizesTime(t *testing.T) {
	late := time.Date(2024, time.June, 3, 23, 59, 0, 0, time.UTC)
	if DayKey(late) != "2024-06-03" {
		t.Fatalf("unexpected key %s", DayKey(late))
	}
}
