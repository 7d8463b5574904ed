package timebalance

import "time"

// Entry is one recorded work session, already reduced to net minutes
// (gross minus pause).
type Entry struct {
	WorkDate time.Time `json:"workDate"`
	Minutes  int       `json:"minutes"`
}

// LeaveRange is an approved absence as an inclusive date range.
type LeaveRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// MedicalLeave is a single-day medical appointment. MinutesCounted is the
// actual appointment duration; zero means the contracted daily minutes are
// credited instead.
type MedicalLeave struct {
	Date           time.Time `json:"date"`
	MinutesCounted int       `json:"minutesCounted"`
}

// Holiday is a public holiday. Weekday holidays reduce the target for that
// day to zero and never count as a credit.
type Holiday struct {
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}

// Correction is a manual, signed minute adjustment applied once to the
// yearly balance, unscoped to a month.
type Correction struct {
	Minutes int    `json:"minutes"`
	Reason  string `json:"reason"`
}

// MonthlyTotals is the full monthly picture: worked and credited minutes,
// the expected target and the resulting balance.
type MonthlyTotals struct {
	WorkedMinutes   int `json:"workedMinutes"`
	SickMinutes     int `json:"sickMinutes"`
	VacationMinutes int `json:"vacationMinutes"`
	OvertimeMinutes int `json:"overtimeMinutes"`
	MedicalMinutes  int `json:"medicalMinutes"`
	CreditMinutes   int `json:"creditMinutes"`
	HolidayCount    int `json:"holidayCount"`
	WorkingDays     int `json:"workingDays"`
	TargetMinutes   int `json:"targetMinutes"`
	Difference      int `json:"difference"`
}

// MonthlyBreakdown is one month inside a yearly balance. Cumulative is the
// running sum of balances from January through this month.
type MonthlyBreakdown struct {
	Month         time.Month `json:"month"`
	WorkedMinutes int        `json:"workedMinutes"`
	CreditMinutes int        `json:"creditMinutes"`
	TargetMinutes int        `json:"targetMinutes"`
	Balance       int        `json:"balance"`
	Cumulative    int        `json:"cumulative"`
}

// YearlyResult carries the yearly balance including manual corrections and
// the per-month breakdown behind it.
type YearlyResult struct {
	YearlyBalance     int                `json:"yearlyBalance"`
	CorrectionMinutes int                `json:"correctionMinutes"`
	Breakdown         []MonthlyBreakdown `json:"breakdown"`
}

// Projection is the live month-to-date view for the current month.
type Projection struct {
	WorkedDaysSoFar int `json:"workedDaysSoFar"`
	TargetSoFar     int `json:"targetSoFar"`
	WorkedSoFar     int `json:"workedSoFar"`
	CreditSoFar     int `json:"creditSoFar"`
	DifferenceSoFar int `json:"differenceSoFar"`
}
