package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrCompleted indicates the customer's onboarding has already been
	// submitted and the wizard may not be reopened.
	ErrCompleted = errors.New("onboarding already completed")
	// ErrRangeExhausted indicates no machine number is free in the range
	// reserved for the machine's type.
	ErrRangeExhausted = errors.New("machine number range exhausted")
)
