package vacation

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCalculateBalanceCarryOverConsumedFirst(t *testing.T) {
	// Three weekdays taken in January, well before the March 31 expiry.
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		CarryOverDays:      5,
		ApprovedLeaves: []DateRange{
			{StartDate: date(2024, time.January, 8), EndDate: date(2024, time.January, 10)},
		},
		Year: 2024,
		AsOf: date(2024, time.February, 1),
	})

	if balance.Taken != 3 {
		t.Fatalf("taken: expected 3, got %v", balance.Taken)
	}
	if balance.CarryOverUsed != 3 {
		t.Fatalf("carry-over used: expected 3, got %v", balance.CarryOverUsed)
	}
	if balance.CarryOverRemaining != 2 {
		t.Fatalf("carry-over remaining: expected 2, got %v", balance.CarryOverRemaining)
	}
	if balance.NewVacationUsed != 0 {
		t.Fatalf("new used: expected 0, got %v", balance.NewVacationUsed)
	}
	if balance.NewVacationRemaining != 30 {
		t.Fatalf("new remaining: expected 30, got %v", balance.NewVacationRemaining)
	}
	if balance.TotalEntitlement != 35 {
		t.Fatalf("total: expected 35, got %v", balance.TotalEntitlement)
	}
	if balance.Remaining != 32 {
		t.Fatalf("remaining: expected 32, got %v", balance.Remaining)
	}
}

func TestCalculateBalanceCarryOverOverflowsIntoNewAllotment(t *testing.T) {
	// Eight weekdays taken before expiry against five carried-over days.
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		CarryOverDays:      5,
		ApprovedLeaves: []DateRange{
			{StartDate: date(2024, time.February, 5), EndDate: date(2024, time.February, 14)},
		},
		Year: 2024,
		AsOf: date(2024, time.March, 1),
	})

	if balance.Taken != 8 {
		t.Fatalf("taken: expected 8, got %v", balance.Taken)
	}
	if balance.CarryOverUsed != 5 {
		t.Fatalf("carry-over used: expected 5, got %v", balance.CarryOverUsed)
	}
	if balance.NewVacationUsed != 3 {
		t.Fatalf("new used: expected 3, got %v", balance.NewVacationUsed)
	}
	if balance.NewVacationRemaining != 27 {
		t.Fatalf("new remaining: expected 27, got %v", balance.NewVacationRemaining)
	}
	if balance.CarryOverUsed+balance.NewVacationUsed != balance.Taken {
		t.Fatal("usage split must add up to taken")
	}
}

func TestCalculateBalanceExpiredCarryOverNotChargedForLaterDays(t *testing.T) {
	// Two weekdays taken in April, after the default March 31 expiry. The
	// expired pot must not absorb them.
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		CarryOverDays:      5,
		ApprovedLeaves: []DateRange{
			{StartDate: date(2024, time.April, 8), EndDate: date(2024, time.April, 9)},
		},
		Year: 2024,
		AsOf: date(2024, time.April, 15),
	})

	if !balance.CarryOverExpired {
		t.Fatal("expected carry-over to be expired")
	}
	if balance.CarryOverExpiresAt != date(2024, time.March, 31) {
		t.Fatalf("unexpected expiry %v", balance.CarryOverExpiresAt)
	}
	if balance.CarryOverUsed != 0 {
		t.Fatalf("carry-over used: expected 0, got %v", balance.CarryOverUsed)
	}
	if balance.CarryOverRemaining != 0 {
		t.Fatalf("expired carry-over must be 0, got %v", balance.CarryOverRemaining)
	}
	if balance.NewVacationUsed != 2 {
		t.Fatalf("new used: expected 2, got %v", balance.NewVacationUsed)
	}
	if balance.NewVacationRemaining != 28 {
		t.Fatalf("new remaining: expected 28, got %v", balance.NewVacationRemaining)
	}
	if balance.TotalEntitlement != 30 {
		t.Fatalf("total after expiry: expected 30, got %v", balance.TotalEntitlement)
	}
	if balance.Remaining != 28 {
		t.Fatalf("remaining: expected 28, got %v", balance.Remaining)
	}
}

func TestCalculateBalanceExpiryZerosUnusedCarryOver(t *testing.T) {
	// Two days used from the pot before expiry, the rest forfeits.
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		CarryOverDays:      5,
		ApprovedLeaves: []DateRange{
			{StartDate: date(2024, time.February, 5), EndDate: date(2024, time.February, 6)},
		},
		Year: 2024,
		AsOf: date(2024, time.May, 1),
	})

	if balance.CarryOverUsed != 2 {
		t.Fatalf("carry-over used: expected 2, got %v", balance.CarryOverUsed)
	}
	if balance.CarryOverRemaining != 0 {
		t.Fatalf("expired remainder must be 0, got %v", balance.CarryOverRemaining)
	}
	if balance.NewVacationRemaining != 30 {
		t.Fatalf("new remaining: expected 30, got %v", balance.NewVacationRemaining)
	}
	if balance.Remaining != 30 {
		t.Fatalf("remaining: expected 30, got %v", balance.Remaining)
	}
}

func TestCalculateBalanceCustomExpiry(t *testing.T) {
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		CarryOverDays:      5,
		Year:               2024,
		CarryOverExpiresAt: timePtr(date(2024, time.June, 30)),
		AsOf:               date(2024, time.May, 1),
	})

	if balance.CarryOverExpired {
		t.Fatal("carry-over must still be valid before the custom expiry")
	}
	if balance.TotalEntitlement != 35 {
		t.Fatalf("total: expected 35, got %v", balance.TotalEntitlement)
	}
}

func TestCalculateBalanceWeekendsAndOverlapsIgnored(t *testing.T) {
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		ApprovedLeaves: []DateRange{
			// June 8-9 2024 is a weekend, contributes nothing.
			{StartDate: date(2024, time.June, 8), EndDate: date(2024, time.June, 9)},
			// Overlapping ranges count each weekday once.
			{StartDate: date(2024, time.June, 10), EndDate: date(2024, time.June, 12)},
			{StartDate: date(2024, time.June, 11), EndDate: date(2024, time.June, 13)},
		},
		Year: 2024,
		AsOf: date(2024, time.July, 1),
	})

	if balance.Taken != 4 {
		t.Fatalf("taken: expected 4, got %v", balance.Taken)
	}
}

func TestCalculateBalanceClipsYearBoundaries(t *testing.T) {
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		ApprovedLeaves: []DateRange{
			// Dec 30 2024 (Mon) through Jan 3 2025; only the 2024 part counts.
			{StartDate: date(2024, time.December, 30), EndDate: date(2025, time.January, 3)},
		},
		Year: 2024,
		AsOf: date(2024, time.December, 31),
	})

	if balance.Taken != 2 {
		t.Fatalf("taken: expected 2 (Dec 30-31), got %v", balance.Taken)
	}
}

func TestCalculateBalanceMalformedRangesSkipped(t *testing.T) {
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays: 30,
		ApprovedLeaves: []DateRange{
			{EndDate: date(2024, time.June, 10)},                                      // missing start
			{StartDate: date(2024, time.June, 12), EndDate: date(2024, time.June, 10)}, // inverted
		},
		Year: 2024,
		AsOf: date(2024, time.July, 1),
	})

	if balance.Taken != 0 {
		t.Fatalf("malformed ranges must contribute 0, got %v", balance.Taken)
	}
}

func TestProrateEntitlementMidYearStart(t *testing.T) {
	// July 1 start in a leap year: 184 of 366 days remain, 30 days prorate
	// to 15 after half-day rounding.
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays:  30,
		EmploymentStartDate: timePtr(date(2024, time.July, 1)),
		Year:                2024,
		AsOf:                date(2024, time.August, 1),
	})

	if balance.Prorated != 15 {
		t.Fatalf("prorated: expected 15, got %v", balance.Prorated)
	}
	if balance.Annual != 30 {
		t.Fatalf("annual: expected 30, got %v", balance.Annual)
	}
}

func TestProrateEntitlementOtherYearStart(t *testing.T) {
	balance := CalculateBalance(BalanceInput{
		AnnualVacationDays:  30,
		EmploymentStartDate: timePtr(date(2020, time.March, 1)),
		Year:                2024,
		AsOf:                date(2024, time.August, 1),
	})

	if balance.Prorated != 30 {
		t.Fatalf("start in an earlier year must not prorate, got %v", balance.Prorated)
	}
}
