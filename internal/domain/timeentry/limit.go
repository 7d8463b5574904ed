package timeentry

import "time"

// DailyLimitMinutes caps the gross minutes recorded per user and day.
const DailyLimitMinutes = 600

// CheckDailyLimit applies the 10-hour rule: a candidate entry is rejected
// when the day total would exceed the limit. Exactly 600 minutes passes.
func CheckDailyLimit(existingMinutes, candidateMinutes int) error {
	if existingMinutes+candidateMinutes > DailyLimitMinutes {
		return &DailyLimitError{ExistingMinutes: existingMinutes, RequestedMinutes: candidateMinutes}
	}
	return nil
}

// GrossMinutes derives the clock-in-to-clock-out duration. Entries lacking
// either timestamp contribute zero.
func GrossMinutes(startedAt, endedAt *time.Time) int {
	if startedAt == nil || endedAt == nil || startedAt.IsZero() || endedAt.IsZero() {
		return 0
	}
	minutes := int(endedAt.Sub(*startedAt).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}
