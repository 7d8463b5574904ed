package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"officetime/internal/platform/querier"
)

var ErrSettingsNotFound = errors.New("employee settings not found")

type Service struct {
	DB querier.Querier
}

func NewService(db querier.Querier) *Service {
	return &Service{DB: db}
}

func (s *Service) Get(ctx context.Context, tenantID, employeeID string) (EmployeeSettings, error) {
	var out EmployeeSettings
	var expiresAt, startDate *time.Time
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, hours_per_week, days_per_week, annual_vacation_days,
           carry_over_days, carry_over_expires_at, employment_start_date, updated_at
    FROM employee_settings
    WHERE tenant_id = $1 AND employee_id = $2
  `, tenantID, employeeID).Scan(
		&out.EmployeeID, &out.HoursPerWeek, &out.DaysPerWeek, &out.AnnualVacationDays,
		&out.CarryOverDays, &expiresAt, &startDate, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return out, ErrSettingsNotFound
		}
		return out, err
	}
	out.CarryOverExpiresAt = expiresAt
	out.EmploymentStartDate = startDate
	return out, nil
}

// Upsert replaces the settings row and appends the change to the change log.
// The log is append-only; administrative history is never rewritten.
func (s *Service) Upsert(ctx context.Context, tenantID, userID string, payload EmployeeSettings) error {
	previous, err := s.Get(ctx, tenantID, payload.EmployeeID)
	if err != nil && !errors.Is(err, ErrSettingsNotFound) {
		return err
	}

	if _, err := s.DB.Exec(ctx, `
    INSERT INTO employee_settings
      (tenant_id, employee_id, hours_per_week, days_per_week, annual_vacation_days,
       carry_over_days, carry_over_expires_at, employment_start_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (tenant_id, employee_id) DO UPDATE SET
      hours_per_week = EXCLUDED.hours_per_week,
      days_per_week = EXCLUDED.days_per_week,
      annual_vacation_days = EXCLUDED.annual_vacation_days,
      carry_over_days = EXCLUDED.carry_over_days,
      carry_over_expires_at = EXCLUDED.carry_over_expires_at,
      employment_start_date = EXCLUDED.employment_start_date,
      updated_at = now()
  `, tenantID, payload.EmployeeID, payload.HoursPerWeek, payload.DaysPerWeek,
		payload.AnnualVacationDays, payload.CarryOverDays, payload.CarryOverExpiresAt,
		payload.EmploymentStartDate); err != nil {
		return err
	}

	return s.appendChange(ctx, tenantID, payload.EmployeeID, ChangeFieldSettings,
		settingsSummary(previous), settingsSummary(payload), userID)
}

func (s *Service) ChangeLog(ctx context.Context, tenantID, employeeID string, limit int) ([]ChangeEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, field, old_value, new_value, changed_by, created_at
    FROM employee_settings_changes
    WHERE tenant_id = $1 AND employee_id = $2
    ORDER BY created_at DESC
    LIMIT $3
  `, tenantID, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ChangeEntry
	for rows.Next() {
		var e ChangeEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Field, &e.OldValue, &e.NewValue, &e.ChangedBy, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// RecordExpiredCarryOver writes the unused carry-over remainder to the
// change log once the expiry cutoff has passed, so the lost days stay
// auditable after the calculator stops reporting them.
func (s *Service) RecordExpiredCarryOver(ctx context.Context, tenantID, employeeID string, expiredDays float64) error {
	return s.appendChange(ctx, tenantID, employeeID, ChangeFieldExpiredDays,
		"", fmt.Sprintf("%.1f", expiredDays), "system")
}

// HasExpiredCarryOverRecord reports whether the expiry of this year's
// carry-over was already logged, so the sweep stays idempotent across runs.
func (s *Service) HasExpiredCarryOverRecord(ctx context.Context, tenantID, employeeID string, year int) (bool, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM employee_settings_changes
    WHERE tenant_id = $1 AND employee_id = $2 AND field = $3
      AND created_at >= $4 AND created_at < $5
  `, tenantID, employeeID, ChangeFieldExpiredDays, yearStart, yearEnd).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListForTenant returns settings for every employee of the tenant, used by
// the carry-over sweep.
func (s *Service) ListForTenant(ctx context.Context, tenantID string) ([]EmployeeSettings, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT employee_id, hours_per_week, days_per_week, annual_vacation_days,
           carry_over_days, carry_over_expires_at, employment_start_date, updated_at
    FROM employee_settings
    WHERE tenant_id = $1
  `, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EmployeeSettings
	for rows.Next() {
		var item EmployeeSettings
		var expiresAt, startDate *time.Time
		if err := rows.Scan(&item.EmployeeID, &item.HoursPerWeek, &item.DaysPerWeek,
			&item.AnnualVacationDays, &item.CarryOverDays, &expiresAt, &startDate, &item.UpdatedAt); err != nil {
			return nil, err
		}
		item.CarryOverExpiresAt = expiresAt
		item.EmploymentStartDate = startDate
		out = append(out, item)
	}
	return out, nil
}

func (s *Service) appendChange(ctx context.Context, tenantID, employeeID, field, oldValue, newValue, changedBy string) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_settings_changes (tenant_id, employee_id, field, old_value, new_value, changed_by)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, tenantID, employeeID, field, oldValue, newValue, changedBy)
	return err
}

func settingsSummary(s EmployeeSettings) string {
	if s.EmployeeID == "" {
		return ""
	}
	return fmt.Sprintf("hoursPerWeek=%.2f daysPerWeek=%.1f annualVacationDays=%.1f carryOverDays=%.1f",
		s.HoursPerWeek, s.DaysPerWeek, s.AnnualVacationDays, s.CarryOverDays)
}
