package report

import "errors"

var (
	ErrAdminScopeRequired = errors.New("admin privileges are required for an all-employee report")
	ErrInvalidScope       = errors.New("invalid report scope")
)
