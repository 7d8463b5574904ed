package leave

// transitions holds every legal status change. An approved request can only
// leave via the cancel_requested handshake; rejected and cancelled are final.
var transitions = map[string][]string{
	StatusPending:         {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved:        {StatusCancelRequested},
	StatusCancelRequested: {StatusCancelled},
	StatusRejected:        {},
	StatusCancelled:       {},
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func IsTerminal(status string) bool {
	next, ok := transitions[status]
	return ok && len(next) == 0
}
