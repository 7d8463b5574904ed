package timeentry

import (
	"strings"
	"testing"
	"time"
)

func TestCheckDailyLimit(t *testing.T) {
	if err := CheckDailyLimit(0, 600); err != nil {
		t.Fatalf("exactly 600 minutes must pass: %v", err)
	}
	if err := CheckDailyLimit(540, 60); err != nil {
		t.Fatalf("total of 600 must pass: %v", err)
	}
	if err := CheckDailyLimit(540, 61); err == nil {
		t.Fatal("expected rejection above 600 minutes")
	}
}

func TestDailyLimitErrorMessage(t *testing.T) {
	err := CheckDailyLimit(570, 90)
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsDailyLimitExceeded(err) {
		t.Fatalf("expected daily limit error, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "9.5") || !strings.Contains(msg, "11.0") || !strings.Contains(msg, "10") {
		t.Fatalf("message missing hour figures: %q", msg)
	}
}

func TestGrossMinutes(t *testing.T) {
	start := time.Date(2024, 5, 6, 9, 0, 0, 0, time.UTC)
	end := start.Add(8*time.Hour + 30*time.Minute)

	if got := GrossMinutes(&start, &end); got != 510 {
		t.Fatalf("expected 510, got %d", got)
	}
	if got := GrossMinutes(nil, &end); got != 0 {
		t.Fatalf("missing start must contribute 0, got %d", got)
	}
	if got := GrossMinutes(&start, nil); got != 0 {
		t.Fatalf("missing end must contribute 0, got %d", got)
	}
	if got := GrossMinutes(nil, nil); got != 0 {
		t.Fatalf("missing both must contribute 0, got %d", got)
	}
}
