package employees

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrInvalidStatus    = errors.New("employee status must be Active, On Leave or Terminated")
)
