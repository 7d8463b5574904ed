package timeentry

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"officetime/internal/platform/querier"
)

type Service struct {
	DB querier.Querier
}

func NewService(db querier.Querier) *Service {
	return &Service{DB: db}
}

type EntryInput struct {
	EmployeeID   string
	WorkDate     time.Time
	StartedAt    *time.Time
	EndedAt      *time.Time
	PauseMinutes int
	Note         string
}

// ValidateDailyLimit reads the persisted same-day totals at call time and
// applies the 10-hour rule before a write. Deliberately not cacheable:
// concurrent edits can change the sum between calls. The check-then-act race
// is accepted as a soft limit.
func (s *Service) ValidateDailyLimit(ctx context.Context, tenantID, employeeID string, workDate time.Time, grossMinutes int, excludeEntryID string) error {
	existing, err := s.sameDayGrossMinutes(ctx, tenantID, employeeID, workDate, excludeEntryID)
	if err != nil {
		return err
	}
	return CheckDailyLimit(existing, grossMinutes)
}

func (s *Service) sameDayGrossMinutes(ctx context.Context, tenantID, employeeID string, workDate time.Time, excludeEntryID string) (int, error) {
	query := `
    SELECT started_at, ended_at
    FROM time_entries
    WHERE tenant_id = $1 AND employee_id = $2 AND work_date = $3
  `
	args := []any{tenantID, employeeID, workDate}
	if excludeEntryID != "" {
		query += " AND id <> $4"
		args = append(args, excludeEntryID)
	}

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var startedAt, endedAt *time.Time
		if err := rows.Scan(&startedAt, &endedAt); err != nil {
			return 0, err
		}
		total += GrossMinutes(startedAt, endedAt)
	}
	return total, rows.Err()
}

// Create validates the date range and the daily limit, then inserts. Net
// minutes are gross minus pause, floored at zero.
func (s *Service) Create(ctx context.Context, tenantID string, input EntryInput) (string, error) {
	gross, err := entryGross(input)
	if err != nil {
		return "", err
	}
	if err := s.ValidateDailyLimit(ctx, tenantID, input.EmployeeID, input.WorkDate, gross, ""); err != nil {
		return "", err
	}

	net := gross - input.PauseMinutes
	if net < 0 {
		net = 0
	}

	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO time_entries (tenant_id, employee_id, work_date, started_at, ended_at, minutes, pause_minutes, note)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, tenantID, input.EmployeeID, input.WorkDate, input.StartedAt, input.EndedAt, net, input.PauseMinutes, input.Note).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) Update(ctx context.Context, tenantID, entryID string, input EntryInput) error {
	gross, err := entryGross(input)
	if err != nil {
		return err
	}
	if err := s.ValidateDailyLimit(ctx, tenantID, input.EmployeeID, input.WorkDate, gross, entryID); err != nil {
		return err
	}

	net := gross - input.PauseMinutes
	if net < 0 {
		net = 0
	}

	tag, err := s.DB.Exec(ctx, `
    UPDATE time_entries
    SET work_date = $1, started_at = $2, ended_at = $3, minutes = $4, pause_minutes = $5, note = $6
    WHERE tenant_id = $7 AND id = $8 AND employee_id = $9
  `, input.WorkDate, input.StartedAt, input.EndedAt, net, input.PauseMinutes, input.Note, tenantID, entryID, input.EmployeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, tenantID, employeeID, entryID string) error {
	tag, err := s.DB.Exec(ctx, `
    DELETE FROM time_entries WHERE tenant_id = $1 AND id = $2 AND employee_id = $3
  `, tenantID, entryID, employeeID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, started_at, ended_at, minutes, pause_minutes, COALESCE(note, ''), created_at
    FROM time_entries
    WHERE tenant_id = $1 AND employee_id = $2 AND work_date >= $3 AND work_date <= $4
    ORDER BY work_date, started_at
  `, tenantID, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.WorkDate, &e.StartedAt, &e.EndedAt,
			&e.Minutes, &e.PauseMinutes, &e.Note, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Service) Get(ctx context.Context, tenantID, entryID string) (Entry, error) {
	var e Entry
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, work_date, started_at, ended_at, minutes, pause_minutes, COALESCE(note, ''), created_at
    FROM time_entries
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, entryID).Scan(&e.ID, &e.EmployeeID, &e.WorkDate, &e.StartedAt, &e.EndedAt,
		&e.Minutes, &e.PauseMinutes, &e.Note, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return e, ErrEntryNotFound
		}
		return e, err
	}
	return e, nil
}

func (s *Service) ListCorrections(ctx context.Context, tenantID, employeeID string, year int) ([]Correction, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, minutes, COALESCE(reason, ''), COALESCE(created_by::text, ''), created_at
    FROM time_entry_corrections
    WHERE tenant_id = $1 AND employee_id = $2 AND effective_date >= $3 AND effective_date <= $4
    ORDER BY created_at
  `, tenantID, employeeID, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []Correction
	for rows.Next() {
		var c Correction
		if err := rows.Scan(&c.ID, &c.EmployeeID, &c.Minutes, &c.Reason, &c.CreatedBy, &c.CreatedAt); err != nil {
			return nil, err
		}
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}

func (s *Service) CreateCorrection(ctx context.Context, tenantID, employeeID, reason, createdBy string, minutes int, effectiveDate time.Time) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO time_entry_corrections (tenant_id, employee_id, minutes, reason, created_by, effective_date)
    VALUES ($1,$2,$3,$4,$5,$6)
    RETURNING id
  `, tenantID, employeeID, minutes, reason, createdBy, effectiveDate).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// entryGross checks date ordering before any computation and returns the
// gross clock duration.
func entryGross(input EntryInput) (int, error) {
	if input.StartedAt != nil && input.EndedAt != nil {
		if !input.EndedAt.After(*input.StartedAt) {
			return 0, ErrInvalidDateRange
		}
	}
	return GrossMinutes(input.StartedAt, input.EndedAt), nil
}
