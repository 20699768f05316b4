package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidRange         = errors.New("end date before start date")
	ErrInvalidDate          = errors.New("dates must be YYYY-MM-DD")
	ErrInvalidTransition    = errors.New("only pending leave requests can be approved or rejected")
)
