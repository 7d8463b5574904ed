package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"officetime/internal/domain/auth"
	"officetime/internal/domain/employee"
)

type Service struct {
	Store     *Store
	Employees *employee.Store
}

func NewService(store *Store, employees *employee.Store) *Service {
	return &Service{Store: store, Employees: employees}
}

type RequestListResult struct {
	Requests []Request
	Total    int
}

func (s *Service) ListRequests(ctx context.Context, tenantID, roleName, employeeID, managerEmployeeID string, limit, offset int) (RequestListResult, error) {
	query := `
    SELECT id, employee_id, leave_type, start_date, end_date, status,
           COALESCE(reason, ''), COALESCE(minutes_counted, 0), COALESCE(decided_by::text, ''), created_at
    FROM leave_requests
    WHERE tenant_id = $1
  `
	countQuery := `
    SELECT COUNT(1)
    FROM leave_requests
    WHERE tenant_id = $1
  `
	args := []any{tenantID}
	if roleName == auth.RoleEmployee {
		query += " AND employee_id = $2"
		countQuery += " AND employee_id = $2"
		args = append(args, employeeID)
	}
	if roleName == auth.RoleManager {
		query += " AND (employee_id = $2 OR employee_id IN (SELECT id FROM employees WHERE tenant_id = $1 AND manager_id = $2))"
		countQuery += " AND (employee_id = $2 OR employee_id IN (SELECT id FROM employees WHERE tenant_id = $1 AND manager_id = $2))"
		args = append(args, managerEmployeeID)
	}

	var total int
	if err := s.Store.DB.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return RequestListResult{}, err
	}

	limitPos := len(args) + 1
	offsetPos := len(args) + 2
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", limitPos, offsetPos)
	args = append(args, limit, offset)

	rows, err := s.Store.DB.Query(ctx, query, args...)
	if err != nil {
		return RequestListResult{}, err
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		var req Request
		if err := rows.Scan(&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate,
			&req.Status, &req.Reason, &req.MinutesCounted, &req.DecidedBy, &req.CreatedAt); err != nil {
			return RequestListResult{}, err
		}
		requests = append(requests, req)
	}
	return RequestListResult{Requests: requests, Total: total}, nil
}

func (s *Service) GetRequest(ctx context.Context, tenantID, requestID string) (Request, error) {
	var req Request
	err := s.Store.DB.QueryRow(ctx, `
    SELECT id, employee_id, leave_type, start_date, end_date, status,
           COALESCE(reason, ''), COALESCE(minutes_counted, 0), COALESCE(decided_by::text, ''), created_at
    FROM leave_requests
    WHERE tenant_id = $1 AND id = $2
  `, tenantID, requestID).Scan(&req.ID, &req.EmployeeID, &req.Type, &req.StartDate, &req.EndDate,
		&req.Status, &req.Reason, &req.MinutesCounted, &req.DecidedBy, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return req, ErrRequestNotFound
		}
		return req, err
	}
	return req, nil
}

func (s *Service) CreateRequest(ctx context.Context, tenantID, employeeID, leaveType, reason string, startDate, endDate time.Time, minutesCounted int) (string, error) {
	var id string
	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO leave_requests (tenant_id, employee_id, leave_type, start_date, end_date, reason, minutes_counted, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING id
  `, tenantID, employeeID, leaveType, startDate, endDate, reason, minutesCounted, StatusPending).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

// transition moves a request to the next status after checking the state
// machine. Terminal states are never left, approved is never re-entered.
func (s *Service) transition(ctx context.Context, tenantID, requestID, nextStatus, actorUserID string) (Request, error) {
	req, err := s.GetRequest(ctx, tenantID, requestID)
	if err != nil {
		return req, err
	}
	if !CanTransition(req.Status, nextStatus) {
		return req, ErrInvalidTransition
	}

	if _, err := s.Store.DB.Exec(ctx, `
    UPDATE leave_requests
    SET status = $1, decided_by = $2, decided_at = now()
    WHERE tenant_id = $3 AND id = $4
  `, nextStatus, actorUserID, tenantID, requestID); err != nil {
		return req, err
	}
	req.Status = nextStatus
	req.DecidedBy = actorUserID
	return req, nil
}

func (s *Service) Approve(ctx context.Context, tenantID, requestID, approverUserID string) (Request, error) {
	return s.transition(ctx, tenantID, requestID, StatusApproved, approverUserID)
}

func (s *Service) Reject(ctx context.Context, tenantID, requestID, approverUserID string) (Request, error) {
	return s.transition(ctx, tenantID, requestID, StatusRejected, approverUserID)
}

// Cancel handles both cancellation paths: a pending request is cancelled
// instantly, an approved one moves to cancel_requested and waits for
// confirmation.
func (s *Service) Cancel(ctx context.Context, tenantID, requestID, actorUserID string) (Request, error) {
	req, err := s.GetRequest(ctx, tenantID, requestID)
	if err != nil {
		return req, err
	}
	switch req.Status {
	case StatusPending:
		return s.transition(ctx, tenantID, requestID, StatusCancelled, actorUserID)
	case StatusApproved:
		return s.transition(ctx, tenantID, requestID, StatusCancelRequested, actorUserID)
	default:
		return req, ErrInvalidTransition
	}
}

// ConfirmCancel completes a pending cancellation of an approved request.
func (s *Service) ConfirmCancel(ctx context.Context, tenantID, requestID, approverUserID string) (Request, error) {
	return s.transition(ctx, tenantID, requestID, StatusCancelled, approverUserID)
}

func (s *Service) EmployeeIDByUserID(ctx context.Context, tenantID, userID string) (string, error) {
	if s.Employees == nil {
		return "", nil
	}
	return s.Employees.EmployeeIDByUserID(ctx, tenantID, userID)
}

func (s *Service) UserIDByEmployeeID(ctx context.Context, tenantID, employeeID string) (string, error) {
	if s.Employees == nil {
		return "", nil
	}
	return s.Employees.UserIDByEmployeeID(ctx, tenantID, employeeID)
}

func (s *Service) IsManagerOf(ctx context.Context, tenantID, managerEmployeeID, employeeID string) (bool, error) {
	if s.Employees == nil {
		return false, nil
	}
	return s.Employees.IsManagerOf(ctx, tenantID, managerEmployeeID, employeeID)
}

func (s *Service) ListHolidays(ctx context.Context, tenantID string, from, to time.Time) ([]Holiday, error) {
	rows, err := s.Store.DB.Query(ctx, `
    SELECT id, date, name, COALESCE(region, '')
    FROM public_holidays
    WHERE tenant_id = $1 AND date >= $2 AND date <= $3
    ORDER BY date
  `, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.Region); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, nil
}

func (s *Service) CreateHoliday(ctx context.Context, tenantID string, date time.Time, name, region string) (string, error) {
	var id string
	if err := s.Store.DB.QueryRow(ctx, `
    INSERT INTO public_holidays (tenant_id, date, name, region)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, tenantID, date, name, region).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, tenantID, holidayID string) error {
	_, err := s.Store.DB.Exec(ctx, "DELETE FROM public_holidays WHERE tenant_id = $1 AND id = $2", tenantID, holidayID)
	return err
}
