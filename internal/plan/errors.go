package plan

import "errors"

var (
	// ErrUnknownRole is returned for a role other than master, worker or verify.
	ErrUnknownRole = errors.New("unknown role")

	// ErrInvalidPlan is returned by Validate for a malformed phase list.
	ErrInvalidPlan = errors.New("invalid plan")
)
