package timeentry

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDateRange = errors.New("end time must be after start time")
	ErrEntryNotFound    = errors.New("time entry not found")
)

// DailyLimitError reports the figures the user sees verbatim.
type DailyLimitError struct {
	ExistingMinutes  int
	RequestedMinutes int
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf(
		"already %.1f hours logged for this day; this entry would total %.1f hours; max %.0f hours per day",
		float64(e.ExistingMinutes)/60,
		float64(e.ExistingMinutes+e.RequestedMinutes)/60,
		float64(DailyLimitMinutes)/60,
	)
}

// IsDailyLimitExceeded reports whether err is a daily-limit rejection.
func IsDailyLimitExceeded(err error) bool {
	var limitErr *DailyLimitError
	return errors.As(err, &limitErr)
}
