package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")

	ErrInvalidRequest = errors.New("invalid request body")
	ErrValidation     = errors.New("validation failed")

	ErrInvalidWeekKey      = errors.New("invalid week key")
	ErrInvalidPeriod       = errors.New("invalid reporting period")
	ErrAllocationNotActive = errors.New("no active allocation for resource and project")

	// ErrSaveFailed is the only error text a failed cell save exposes to callers.
	ErrSaveFailed = errors.New("Failed to update weekly allocation")
)

type WeekKeyError struct{ Key string }

func (e *WeekKeyError) Error() string {
	return fmt.Sprintf("week key '%s' must look like YYYY-WNN", e.Key)
}
func (e *WeekKeyError) Is(target error) bool { return target == ErrInvalidWeekKey }

type ActivityNotFoundError struct{ ActivityID string }

func (e *ActivityNotFoundError) Error() string {
	return fmt.Sprintf("non-project activity '%s' not found", e.ActivityID)
}
func (e *ActivityNotFoundError) Is(target error) bool { return target == ErrNotFound }
