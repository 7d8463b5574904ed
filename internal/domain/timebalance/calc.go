package timebalance

import (
	"log/slog"
	"time"
)

// MonthlyInput is the snapshot for one displayed month. Leave slices are
// already filtered to approved requests.
type MonthlyInput struct {
	Entries        []Entry
	SickLeaves     []LeaveRange
	VacationLeaves []LeaveRange
	OvertimeLeaves []LeaveRange
	MedicalLeaves  []MedicalLeave
	Holidays       []Holiday
	MonthStart     time.Time
	MonthEnd       time.Time
	DailyMinutes   int
}

// ComputeMonthlyTotals aggregates worked and credited minutes for one month.
//
// Credits follow precedence sick > vacation > overtime reduction: a date
// claimed by a higher category never credits a lower one, and holidays never
// credit anything. Medical credits are summed independently from the other
// categories by their actual appointment duration.
func ComputeMonthlyTotals(input MonthlyInput) MonthlyTotals {
	holidaySet := HolidaySet(input.Holidays, input.MonthStart, input.MonthEnd)

	sickSet := subtract(WeekdaySet(input.SickLeaves, input.MonthStart, input.MonthEnd), holidaySet)
	vacationSet := subtract(subtract(WeekdaySet(input.VacationLeaves, input.MonthStart, input.MonthEnd), holidaySet), sickSet)
	overtimeSet := subtract(subtract(WeekdaySet(input.OvertimeLeaves, input.MonthStart, input.MonthEnd), holidaySet), union(sickSet, vacationSet))
	absenceSet := union(sickSet, vacationSet, overtimeSet)

	worked := sumWorked(input.Entries, input.MonthStart, input.MonthEnd, holidaySet, absenceSet)

	medical := 0
	monthStart := dayOf(input.MonthStart)
	monthEnd := dayOf(input.MonthEnd)
	for _, m := range input.MedicalLeaves {
		if m.Date.IsZero() {
			slog.Warn("medical leave with missing date skipped")
			continue
		}
		d := dayOf(m.Date)
		if d.Before(monthStart) || d.After(monthEnd) {
			continue
		}
		if m.MinutesCounted > 0 {
			medical += m.MinutesCounted
		} else {
			medical += input.DailyMinutes
		}
	}

	totals := MonthlyTotals{
		WorkedMinutes:   worked,
		SickMinutes:     len(sickSet) * input.DailyMinutes,
		VacationMinutes: len(vacationSet) * input.DailyMinutes,
		OvertimeMinutes: len(overtimeSet) * input.DailyMinutes,
		MedicalMinutes:  medical,
		HolidayCount:    WeekdayHolidayCount(input.Holidays, input.MonthStart, input.MonthEnd),
		WorkingDays:     WorkingDayCount(input.MonthStart, input.MonthEnd, holidaySet),
	}
	totals.CreditMinutes = totals.SickMinutes + totals.VacationMinutes + totals.OvertimeMinutes + totals.MedicalMinutes
	totals.TargetMinutes = totals.WorkingDays * input.DailyMinutes
	totals.Difference = totals.WorkedMinutes + totals.CreditMinutes - totals.TargetMinutes
	return totals
}

// YearlyInput is the snapshot for a whole year. AbsenceLeaves is the merged
// list of approved sick, vacation and overtime-reduction ranges.
type YearlyInput struct {
	Year          int
	Today         time.Time
	Entries       []Entry
	AbsenceLeaves []LeaveRange
	Holidays      []Holiday
	Corrections   []Correction
	DailyMinutes  int
}

// ComputeYearlyBalance walks the calendar months from January through the
// current month, capping the in-progress month at today. Manual corrections
// contribute their signed minutes once, unscoped to a month.
func ComputeYearlyBalance(input YearlyInput) YearlyResult {
	result := YearlyResult{}

	lastMonth := time.December
	today := dayOf(input.Today)
	if input.Year > today.Year() {
		lastMonth = 0
	} else if input.Year == today.Year() {
		lastMonth = today.Month()
	}

	cumulative := 0
	for month := time.January; month <= lastMonth; month++ {
		monthStart := time.Date(input.Year, month, 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, -1)
		if monthEnd.After(today) {
			monthEnd = today
		}

		holidaySet := HolidaySet(input.Holidays, monthStart, monthEnd)
		absenceSet := subtract(WeekdaySet(input.AbsenceLeaves, monthStart, monthEnd), holidaySet)

		worked := sumWorked(input.Entries, monthStart, monthEnd, holidaySet, absenceSet)
		credit := len(absenceSet) * input.DailyMinutes
		target := WorkingDayCount(monthStart, monthEnd, holidaySet) * input.DailyMinutes
		balance := worked + credit - target
		cumulative += balance

		result.Breakdown = append(result.Breakdown, MonthlyBreakdown{
			Month:         month,
			WorkedMinutes: worked,
			CreditMinutes: credit,
			TargetMinutes: target,
			Balance:       balance,
			Cumulative:    cumulative,
		})
	}

	for _, c := range input.Corrections {
		result.CorrectionMinutes += c.Minutes
	}
	result.YearlyBalance = cumulative + result.CorrectionMinutes
	return result
}

// ProjectionInput is the snapshot for the month-to-date view.
type ProjectionInput struct {
	Entries       []Entry
	AbsenceLeaves []LeaveRange
	Holidays      []Holiday
	MonthStart    time.Time
	MonthEnd      time.Time
	Today         time.Time
	DailyMinutes  int
}

// ComputeProjection restricts the monthly day/target logic to the window
// [monthStart, min(today, monthEnd)]. Returns nil when today is not within
// the displayed month.
func ComputeProjection(input ProjectionInput) *Projection {
	today := dayOf(input.Today)
	monthStart := dayOf(input.MonthStart)
	monthEnd := dayOf(input.MonthEnd)
	if today.Before(monthStart) || today.After(monthEnd) {
		return nil
	}
	windowEnd := monthEnd
	if today.Before(windowEnd) {
		windowEnd = today
	}

	holidaySet := HolidaySet(input.Holidays, monthStart, windowEnd)
	absenceSet := subtract(WeekdaySet(input.AbsenceLeaves, monthStart, windowEnd), holidaySet)

	workedDays := make(map[string]struct{})
	worked := 0
	for _, entry := range input.Entries {
		if entry.WorkDate.IsZero() {
			continue
		}
		d := dayOf(entry.WorkDate)
		if d.Before(monthStart) || d.After(windowEnd) {
			continue
		}
		key := DayKey(d)
		if _, holiday := holidaySet[key]; holiday {
			continue
		}
		if _, absent := absenceSet[key]; absent {
			continue
		}
		worked += entry.Minutes
		workedDays[key] = struct{}{}
	}

	credit := len(absenceSet) * input.DailyMinutes
	target := WorkingDayCount(monthStart, windowEnd, holidaySet) * input.DailyMinutes

	return &Projection{
		WorkedDaysSoFar: len(workedDays),
		TargetSoFar:     target,
		WorkedSoFar:     worked,
		CreditSoFar:     credit,
		DifferenceSoFar: worked + credit - target,
	}
}

func sumWorked(entries []Entry, from, to time.Time, holidays, absences map[string]struct{}) int {
	worked := 0
	from = dayOf(from)
	to = dayOf(to)
	for _, entry := range entries {
		if entry.WorkDate.IsZero() {
			slog.Warn("time entry with missing work date skipped")
			continue
		}
		d := dayOf(entry.WorkDate)
		if d.Before(from) || d.After(to) {
			continue
		}
		key := DayKey(d)
		if _, holiday := holidays[key]; holiday {
			continue
		}
		if _, absent := absences[key]; absent {
			continue
		}
		worked += entry.Minutes
	}
	return worked
}
