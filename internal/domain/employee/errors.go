package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrContractNotFound = errors.New("contract not found")
	ErrBadgeNotFound    = errors.New("no employee matches the badge")
)
