package leave

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := [][2]string{
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusPending, StatusCancelled},
		{StatusApproved, StatusCancelRequested},
		{StatusCancelRequested, StatusCancelled},
	}
	for _, pair := range allowed {
		if !CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]string{
		{StatusApproved, StatusCancelled},
		{StatusApproved, StatusApproved},
		{StatusCancelRequested, StatusApproved},
		{StatusRejected, StatusPending},
		{StatusCancelled, StatusPending},
		{StatusCancelled, StatusApproved},
		{StatusRejected, StatusApproved},
	}
	for _, pair := range denied {
		if CanTransition(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s to be denied", pair[0], pair[1])
		}
	}
}

func TestTerminalStates(t *testing.T) {
	if !IsTerminal(StatusRejected) || !IsTerminal(StatusCancelled) {
		t.Fatal("rejected and cancelled must be terminal")
	}
	if IsTerminal(StatusPending) || IsTerminal(StatusApproved) || IsTerminal(StatusCancelRequested) {
		t.Fatal("non-terminal status reported as terminal")
	}
}

func TestValidType(t *testing.T) {
	for _, lt := range LeaveTypes {
		if !ValidType(lt) {
			t.Fatalf("expected %s to be valid", lt)
		}
	}
	if ValidType("sabbatical") {
		t.Fatal("unexpected valid type")
	}
}
