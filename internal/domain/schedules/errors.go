package schedules

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidInterval  = errors.New("schedule end must be after start")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrScheduleConflict = errors.New("schedule conflict")
)
