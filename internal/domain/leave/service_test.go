package leave

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"

	"officetime/internal/domain/auth"
)

const employeeCountQuery = `
    SELECT COUNT(1)
    FROM leave_requests
    WHERE tenant_id = $1
   AND employee_id = $2`

const employeeListQuery = `
    SELECT id, employee_id, leave_type, start_date, end_date, status,
           COALESCE(reason, ''), COALESCE(minutes_counted, 0), COALESCE(decided_by::text, ''), created_at
    FROM leave_requests
    WHERE tenant_id = $1
   AND employee_id = $2 ORDER BY created_at DESC LIMIT $3 OFFSET $4`

func TestListRequestsPropagatesCountError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(employeeCountQuery)).
		WithArgs("t1", "e1").
		WillReturnError(errors.New("connection reset"))

	service := NewService(NewStore(mock), nil)
	_, err = service.ListRequests(context.Background(), "t1", auth.RoleEmployee, "e1", "", 50, 0)
	if err == nil {
		t.Fatal("expected count failure to surface, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestListRequestsScopesEmployeeToOwnRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	created := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(employeeCountQuery)).
		WithArgs("t1", "e1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta(employeeListQuery)).
		WithArgs("t1", "e1", 50, 0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "employee_id", "leave_type", "start_date", "end_date", "status",
			"reason", "minutes_counted", "decided_by", "created_at",
		}).AddRow("req-1", "e1", TypeVacation, start, end, StatusPending, "", 0, "", created))

	service := NewService(NewStore(mock), nil)
	result, err := service.ListRequests(context.Background(), "t1", auth.RoleEmployee, "e1", "", 50, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 1 || len(result.Requests) != 1 {
		t.Fatalf("expected one scoped request, got total=%d rows=%d", result.Total, len(result.Requests))
	}
	if result.Requests[0].EmployeeID != "e1" {
		t.Fatalf("unexpected row: %+v", result.Requests[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
