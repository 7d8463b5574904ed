package leave

import "errors"

var (
	ErrRequestNotFound   = errors.New("leave request not found")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrForbidden         = errors.New("not allowed to act on this request")
)
