package shared

import (
	"testing"
	"time"
)

func TestParseDateAcceptsBothFormats(t *testing.T) {
	got, err := ParseDate("2024-06-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2024 || got.Month() != time.June || got.Day() != 3 {
		t.Fatalf("unexpected date: %v", got)
	}

	got, err = ParseDate("2024-06-03T08:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Hour() != 8 || got.Minute() != 30 {
		t.Fatalf("unexpected time: %v", got)
	}

	if _, err := ParseDate("03.06.2024"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseYearMonthFallsBackToNow(t *testing.T) {
	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	year, month := ParseYearMonth("2023", "2", now)
	if year != 2023 || month != time.February {
		t.Fatalf("unexpected result: %d %v", year, month)
	}

	year, month = ParseYearMonth("", "13", now)
	if year != 2024 || month != time.June {
		t.Fatalf("expected fallback to now, got %d %v", year, month)
	}

	if got := ParseYear("not-a-year", now); got != 2024 {
		t.Fatalf("expected fallback year, got %d", got)
	}
}

func TestValidatorCollectsAndSortsIssues(t *testing.T) {
	v := NewValidator()
	v.Required("startDate", "", "startDate is required")
	v.Enum("leaveType", "holiday", []string{"vacation", "sick"}, "leaveType must be one of vacation, sick")
	v.Positive("hoursPerWeek", 0, "hoursPerWeek must be positive")

	if !v.HasIssues() {
		t.Fatal("expected validation issues")
	}
	issues := v.Issues()
	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d", len(issues))
	}
	if issues[0].Field != "hoursPerWeek" {
		t.Fatalf("expected sorted issues, got %q first", issues[0].Field)
	}
}

func TestValidatorDateOrder(t *testing.T) {
	v := NewValidator()
	start, _ := v.Date("startDate", "2024-06-10")
	end, _ := v.Date("endDate", "2024-06-05")
	v.DateOrder("startDate", start, "endDate", end)

	if len(v.Issues()) != 2 {
		t.Fatalf("expected issues on both fields, got %d", len(v.Issues()))
	}

	v = NewValidator()
	start, _ = v.Date("startDate", "2024-06-05")
	end, _ = v.Date("endDate", "2024-06-10")
	v.DateOrder("startDate", start, "endDate", end)
	if v.HasIssues() {
		t.Fatalf("expected no issues, got %+v", v.Issues())
	}
}
