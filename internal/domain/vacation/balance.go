package vacation

import (
	"log/slog"
	"math"
	"time"
)

// DateRange is an approved vacation leave as an inclusive date range.
type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// BalanceInput carries everything the calculator needs. ApprovedLeaves must
// already be filtered to approved requests; ranges spanning year boundaries
// are clipped to Year.
type BalanceInput struct {
	AnnualVacationDays  float64
	CarryOverDays       float64
	EmploymentStartDate *time.Time
	ApprovedLeaves      []DateRange
	Year                int
	CarryOverExpiresAt  *time.Time
	AsOf                time.Time
}

// Balance splits the entitlement between the carried-over and the new
// allotment. Carry-over is consumed first and stops counting once expired.
type Balance struct {
	TotalEntitlement     float64   `json:"totalEntitlement"`
	Taken                float64   `json:"taken"`
	Remaining            float64   `json:"remaining"`
	Annual               float64   `json:"annual"`
	Prorated             float64   `json:"prorated"`
	CarryOver            float64   `json:"carryOver"`
	CarryOverUsed        float64   `json:"carryOverUsed"`
	CarryOverRemaining   float64   `json:"carryOverRemaining"`
	CarryOverExpiresAt   time.Time `json:"carryOverExpiresAt"`
	CarryOverExpired     bool      `json:"carryOverExpired"`
	NewVacationUsed      float64   `json:"newVacationUsed"`
	NewVacationRemaining float64   `json:"newVacationRemaining"`
}

// CalculateBalance is total: malformed ranges contribute zero days and are
// logged, never raised.
func CalculateBalance(input BalanceInput) Balance {
	expiresAt := carryOverExpiry(input.Year, input.CarryOverExpiresAt)
	expired := dayOf(input.AsOf).After(expiresAt)

	prorated := prorateEntitlement(input.AnnualVacationDays, input.EmploymentStartDate, input.Year)

	yearStart := time.Date(input.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(input.Year, time.December, 31, 0, 0, 0, 0, time.UTC)

	takenDays := leaveWeekdays(input.ApprovedLeaves, yearStart, yearEnd)
	taken := float64(len(takenDays))

	// Carry-over absorbs only days taken on or before the expiry date; a
	// day taken after expiry can never reach back into the expired pot.
	takenBeforeExpiry := 0.0
	for key := range takenDays {
		if d, err := time.Parse("2006-01-02", key); err == nil && !d.After(expiresAt) {
			takenBeforeExpiry++
		}
	}

	carryOverUsed := math.Min(takenBeforeExpiry, input.CarryOverDays)
	newUsed := taken - carryOverUsed
	carryOverRemaining := math.Max(0, input.CarryOverDays-carryOverUsed)
	if expired {
		carryOverRemaining = 0
	}
	newRemaining := math.Max(0, prorated-newUsed)

	total := prorated
	if !expired {
		total += input.CarryOverDays
	}

	return Balance{
		TotalEntitlement:     total,
		Taken:                taken,
		Remaining:            newRemaining + carryOverRemaining,
		Annual:               input.AnnualVacationDays,
		Prorated:             prorated,
		CarryOver:            input.CarryOverDays,
		CarryOverUsed:        carryOverUsed,
		CarryOverRemaining:   carryOverRemaining,
		CarryOverExpiresAt:   expiresAt,
		CarryOverExpired:     expired,
		NewVacationUsed:      newUsed,
		NewVacationRemaining: newRemaining,
	}
}

// carryOverExpiry defaults to March 31 of the year when no explicit expiry
// is configured.
func carryOverExpiry(year int, expiresAt *time.Time) time.Time {
	if expiresAt != nil && !expiresAt.IsZero() {
		return dayOf(*expiresAt)
	}
	return time.Date(year, time.March, 31, 0, 0, 0, 0, time.UTC)
}

// prorateEntitlement scales the annual entitlement by the remaining calendar
// fraction of the year when employment starts inside it, rounded to half
// days.
func prorateEntitlement(annual float64, start *time.Time, year int) float64 {
	if start == nil || start.IsZero() || start.Year() != year {
		return annual
	}
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	nextYear := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	daysInYear := nextYear.Sub(yearStart).Hours() / 24
	remaining := nextYear.Sub(dayOf(*start)).Hours() / 24
	if remaining <= 0 {
		return 0
	}
	return math.Round(annual*(remaining/daysInYear)*2) / 2
}

// leaveWeekdays builds the union of weekday dates across all ranges clipped
// to [from, to]; overlapping ranges count each date once.
func leaveWeekdays(ranges []DateRange, from, to time.Time) map[string]struct{} {
	set := make(map[string]struct{})
	for _, r := range ranges {
		if r.StartDate.IsZero() || r.EndDate.IsZero() {
			slog.Warn("vacation range with missing date skipped", "start", r.StartDate, "end", r.EndDate)
			continue
		}
		start := dayOf(r.StartDate)
		end := dayOf(r.EndDate)
		if end.Before(start) {
			slog.Warn("vacation range with inverted dates skipped", "start", r.StartDate, "end", r.EndDate)
			continue
		}
		if start.Before(from) {
			start = from
		}
		if end.After(to) {
			end = to
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
			set[d.Format("2006-01-02")] = struct{}{}
		}
	}
	return set
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
