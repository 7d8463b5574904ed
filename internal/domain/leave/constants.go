package leave

const (
	StatusPending         = "pending"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusCancelRequested = "cancel_requested"
	StatusCancelled       = "cancelled"
)

const (
	TypeVacation          = "vacation"
	TypeSick              = "sick"
	TypeMedical           = "medical"
	TypeOvertimeReduction = "overtime_reduction"
	TypeOther             = "other"
)

var LeaveTypes = []string{TypeVacation, TypeSick, TypeMedical, TypeOvertimeReduction, TypeOther}

func ValidType(leaveType string) bool {
	for _, lt := range LeaveTypes {
		if lt == leaveType {
			return true
		}
	}
	return false
}
