package balance

import (
	"context"
	"time"

	"officetime/internal/domain/leave"
	"officetime/internal/domain/timebalance"
	"officetime/internal/platform/querier"
)

// Store reads the snapshots the engine consumes: time entries, approved
// leaves by type, public holidays and corrections, all tenant-scoped.
type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) Entries(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]timebalance.Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT work_date, minutes
    FROM time_entries
    WHERE tenant_id = $1 AND employee_id = $2 AND work_date >= $3 AND work_date <= $4
  `, tenantID, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timebalance.Entry
	for rows.Next() {
		var e timebalance.Entry
		if err := rows.Scan(&e.WorkDate, &e.Minutes); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ApprovedRanges returns approved leave ranges of one type overlapping
// [from, to].
func (s *Store) ApprovedRanges(ctx context.Context, tenantID, employeeID, leaveType string, from, to time.Time) ([]timebalance.LeaveRange, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT start_date, end_date
    FROM leave_requests
    WHERE tenant_id = $1 AND employee_id = $2 AND leave_type = $3 AND status = $4
      AND start_date <= $5 AND end_date >= $6
  `, tenantID, employeeID, leaveType, leave.StatusApproved, to, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ranges []timebalance.LeaveRange
	for rows.Next() {
		var r timebalance.LeaveRange
		if err := rows.Scan(&r.StartDate, &r.EndDate); err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, rows.Err()
}

// MedicalLeaves returns approved single-day medical appointments in range.
func (s *Store) MedicalLeaves(ctx context.Context, tenantID, employeeID string, from, to time.Time) ([]timebalance.MedicalLeave, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT start_date, COALESCE(minutes_counted, 0)
    FROM leave_requests
    WHERE tenant_id = $1 AND employee_id = $2 AND leave_type = $3 AND status = $4
      AND start_date >= $5 AND start_date <= $6
  `, tenantID, employeeID, leave.TypeMedical, leave.StatusApproved, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaves []timebalance.MedicalLeave
	for rows.Next() {
		var m timebalance.MedicalLeave
		if err := rows.Scan(&m.Date, &m.MinutesCounted); err != nil {
			return nil, err
		}
		leaves = append(leaves, m)
	}
	return leaves, rows.Err()
}

func (s *Store) Holidays(ctx context.Context, tenantID string, from, to time.Time) ([]timebalance.Holiday, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT date, name
    FROM public_holidays
    WHERE tenant_id = $1 AND date >= $2 AND date <= $3
  `, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []timebalance.Holiday
	for rows.Next() {
		var h timebalance.Holiday
		if err := rows.Scan(&h.Date, &h.Name); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

func (s *Store) Corrections(ctx context.Context, tenantID, employeeID string, year int) ([]timebalance.Correction, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	rows, err := s.DB.Query(ctx, `
    SELECT minutes, COALESCE(reason, '')
    FROM time_entry_corrections
    WHERE tenant_id = $1 AND employee_id = $2 AND effective_date >= $3 AND effective_date <= $4
  `, tenantID, employeeID, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var corrections []timebalance.Correction
	for rows.Next() {
		var c timebalance.Correction
		if err := rows.Scan(&c.Minutes, &c.Reason); err != nil {
			return nil, err
		}
		corrections = append(corrections, c)
	}
	return corrections, rows.Err()
}
