package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("no employee matches that identifier")
	ErrEmployeeInactive = errors.New("employee is inactive")
)
