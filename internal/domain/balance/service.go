package balance

import (
	"context"
	"time"

	"officetime/internal/domain/leave"
	"officetime/internal/domain/settings"
	"officetime/internal/domain/timebalance"
	"officetime/internal/domain/vacation"
)

// Service wires the stored snapshots into the pure balance engine. All
// computation happens in memory; the service only decides what to fetch.
type Service struct {
	Store    *Store
	Settings *settings.Service
}

func NewService(store *Store, settingsSvc *settings.Service) *Service {
	return &Service{Store: store, Settings: settingsSvc}
}

// MonthlyTotals computes the full monthly picture for one employee.
func (s *Service) MonthlyTotals(ctx context.Context, tenantID, employeeID string, year int, month time.Month) (timebalance.MonthlyTotals, error) {
	var totals timebalance.MonthlyTotals

	cfg, err := s.Settings.Get(ctx, tenantID, employeeID)
	if err != nil {
		return totals, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	input, err := s.monthlyInput(ctx, tenantID, employeeID, monthStart, monthEnd, cfg.DailyMinutes())
	if err != nil {
		return totals, err
	}
	return timebalance.ComputeMonthlyTotals(input), nil
}

// YearlyBalance computes the yearly saldo with its monthly breakdown.
func (s *Service) YearlyBalance(ctx context.Context, tenantID, employeeID string, year int, today time.Time) (timebalance.YearlyResult, error) {
	var result timebalance.YearlyResult

	cfg, err := s.Settings.Get(ctx, tenantID, employeeID)
	if err != nil {
		return result, err
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	entries, err := s.Store.Entries(ctx, tenantID, employeeID, yearStart, yearEnd)
	if err != nil {
		return result, err
	}
	absences, err := s.absenceRanges(ctx, tenantID, employeeID, yearStart, yearEnd)
	if err != nil {
		return result, err
	}
	holidays, err := s.Store.Holidays(ctx, tenantID, yearStart, yearEnd)
	if err != nil {
		return result, err
	}
	corrections, err := s.Store.Corrections(ctx, tenantID, employeeID, year)
	if err != nil {
		return result, err
	}

	return timebalance.ComputeYearlyBalance(timebalance.YearlyInput{
		Year:          year,
		Today:         today,
		Entries:       entries,
		AbsenceLeaves: absences,
		Holidays:      holidays,
		Corrections:   corrections,
		DailyMinutes:  cfg.DailyMinutes(),
	}), nil
}

// Projection computes the month-to-date view; nil when today is outside the
// displayed month.
func (s *Service) Projection(ctx context.Context, tenantID, employeeID string, year int, month time.Month, today time.Time) (*timebalance.Projection, error) {
	cfg, err := s.Settings.Get(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	entries, err := s.Store.Entries(ctx, tenantID, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	absences, err := s.absenceRanges(ctx, tenantID, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	holidays, err := s.Store.Holidays(ctx, tenantID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	return timebalance.ComputeProjection(timebalance.ProjectionInput{
		Entries:       entries,
		AbsenceLeaves: absences,
		Holidays:      holidays,
		MonthStart:    monthStart,
		MonthEnd:      monthEnd,
		Today:         today,
		DailyMinutes:  cfg.DailyMinutes(),
	}), nil
}

// VacationBalance computes the split vacation entitlement for a year.
func (s *Service) VacationBalance(ctx context.Context, tenantID, employeeID string, year int, asOf time.Time) (vacation.Balance, error) {
	var out vacation.Balance

	cfg, err := s.Settings.Get(ctx, tenantID, employeeID)
	if err != nil {
		return out, err
	}

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	ranges, err := s.Store.ApprovedRanges(ctx, tenantID, employeeID, leave.TypeVacation, yearStart, yearEnd)
	if err != nil {
		return out, err
	}

	approved := make([]vacation.DateRange, 0, len(ranges))
	for _, r := range ranges {
		approved = append(approved, vacation.DateRange{StartDate: r.StartDate, EndDate: r.EndDate})
	}

	return vacation.CalculateBalance(vacation.BalanceInput{
		AnnualVacationDays:  cfg.AnnualVacationDays,
		CarryOverDays:       cfg.CarryOverDays,
		EmploymentStartDate: cfg.EmploymentStartDate,
		ApprovedLeaves:      approved,
		Year:                year,
		CarryOverExpiresAt:  cfg.CarryOverExpiresAt,
		AsOf:                asOf,
	}), nil
}

func (s *Service) monthlyInput(ctx context.Context, tenantID, employeeID string, monthStart, monthEnd time.Time, dailyMinutes int) (timebalance.MonthlyInput, error) {
	input := timebalance.MonthlyInput{
		MonthStart:   monthStart,
		MonthEnd:     monthEnd,
		DailyMinutes: dailyMinutes,
	}

	var err error
	if input.Entries, err = s.Store.Entries(ctx, tenantID, employeeID, monthStart, monthEnd); err != nil {
		return input, err
	}
	if input.SickLeaves, err = s.Store.ApprovedRanges(ctx, tenantID, employeeID, leave.TypeSick, monthStart, monthEnd); err != nil {
		return input, err
	}
	if input.VacationLeaves, err = s.Store.ApprovedRanges(ctx, tenantID, employeeID, leave.TypeVacation, monthStart, monthEnd); err != nil {
		return input, err
	}
	if input.OvertimeLeaves, err = s.Store.ApprovedRanges(ctx, tenantID, employeeID, leave.TypeOvertimeReduction, monthStart, monthEnd); err != nil {
		return input, err
	}
	if input.MedicalLeaves, err = s.Store.MedicalLeaves(ctx, tenantID, employeeID, monthStart, monthEnd); err != nil {
		return input, err
	}
	if input.Holidays, err = s.Store.Holidays(ctx, tenantID, monthStart, monthEnd); err != nil {
		return input, err
	}
	return input, nil
}

func (s *Service) absenceRanges(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]timebalance.LeaveRange, error) {
	var all []timebalance.LeaveRange
	for _, leaveType := range []string{leave.TypeSick, leave.TypeVacation, leave.TypeOvertimeReduction} {
		ranges, err := s.Store.ApprovedRanges(ctx, tenantID, employeeID, leaveType, from, to)
		if err != nil {
			return nil, err
		}
		all = append(all, ranges...)
	}
	return all, nil
}
