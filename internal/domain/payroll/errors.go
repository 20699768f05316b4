package payroll

import "errors"

var (
	ErrPayrollItemNotFound = errors.New("payroll item not found")
	ErrInvalidStatus       = errors.New("payroll status must be Pending, Processing or Paid")
	ErrInvalidTransition   = errors.New("payroll status transition not allowed")
	ErrEmptyPeriod         = errors.New("pay period is required")
)
