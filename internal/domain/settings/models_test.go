package settings

import "testing"

func TestDailyMinutes(t *testing.T) {
	s := EmployeeSettings{HoursPerWeek: 39.5, DaysPerWeek: 5}
	if got := s.DailyMinutes(); got != 474 {
		t.Fatalf("expected 474 daily minutes, got %d", got)
	}

	s = EmployeeSettings{HoursPerWeek: 40, DaysPerWeek: 5}
	if got := s.DailyMinutes(); got != 480 {
		t.Fatalf("expected 480 daily minutes, got %d", got)
	}
}

func TestDailyMinutesZeroDays(t *testing.T) {
	s := EmployeeSettings{HoursPerWeek: 40, DaysPerWeek: 0}
	if got := s.DailyMinutes(); got != 0 {
		t.Fatalf("expected 0 for zero days per week, got %d", got)
	}
}
