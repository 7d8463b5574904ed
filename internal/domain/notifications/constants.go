package notifications

const (
	TypeLeaveSubmitted      = "leave.submitted"
	TypeLeaveApproved       = "leave.approved"
	TypeLeaveRejected       = "leave.rejected"
	TypeLeaveCancelRequest  = "leave.cancel_requested"
	TypeLeaveCancelled      = "leave.cancelled"
	TypeCarryOverExpired    = "vacation.carry_over_expired"
	TypeDailyLimitViolation = "timeentry.daily_limit"
)
