package timeentry

import (
	"context"
	"regexp"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

const sameDayQuery = `
    SELECT started_at, ended_at
    FROM time_entries
    WHERE tenant_id = $1 AND employee_id = $2 AND work_date = $3
  `

func timePtr(t time.Time) *time.Time { return &t }

func TestValidateDailyLimitRejectsOverflow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	workDate := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	morning := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)
	afternoon := time.Date(2024, 5, 6, 14, 0, 0, 0, time.UTC)

	// 5h + 4h already logged.
	mock.ExpectQuery(regexp.QuoteMeta(sameDayQuery)).
		WithArgs("t1", "e1", workDate).
		WillReturnRows(pgxmock.NewRows([]string{"started_at", "ended_at"}).
			AddRow(timePtr(morning), timePtr(morning.Add(5*time.Hour))).
			AddRow(timePtr(afternoon), timePtr(afternoon.Add(4*time.Hour))))

	service := NewService(mock)
	err = service.ValidateDailyLimit(context.Background(), "t1", "e1", workDate, 90, "")
	if !IsDailyLimitExceeded(err) {
		t.Fatalf("expected daily limit error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateDailyLimitAcceptsExactLimit(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	workDate := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	morning := time.Date(2024, 5, 6, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(sameDayQuery)).
		WithArgs("t1", "e1", workDate).
		WillReturnRows(pgxmock.NewRows([]string{"started_at", "ended_at"}).
			AddRow(timePtr(morning), timePtr(morning.Add(9*time.Hour))))

	service := NewService(mock)
	if err := service.ValidateDailyLimit(context.Background(), "t1", "e1", workDate, 60, ""); err != nil {
		t.Fatalf("expected exactly 600 minutes to pass, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateDailyLimitIgnoresEntriesWithoutTimestamps(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	workDate := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(sameDayQuery)).
		WithArgs("t1", "e1", workDate).
		WillReturnRows(pgxmock.NewRows([]string{"started_at", "ended_at"}).
			AddRow((*time.Time)(nil), (*time.Time)(nil)))

	service := NewService(mock)
	if err := service.ValidateDailyLimit(context.Background(), "t1", "e1", workDate, 600, ""); err != nil {
		t.Fatalf("timestampless entries must contribute 0, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestValidateDailyLimitExcludesEditedEntry(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer mock.Close()

	workDate := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(sameDayQuery+" AND id <> $4")).
		WithArgs("t1", "e1", workDate, "entry-1").
		WillReturnRows(pgxmock.NewRows([]string{"started_at", "ended_at"}))

	service := NewService(mock)
	if err := service.ValidateDailyLimit(context.Background(), "t1", "e1", workDate, 480, "entry-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
