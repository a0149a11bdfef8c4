package domain

import "errors"

// Domain failure kinds. Callers wrap these with the identifying key
// (fmt.Errorf("...: %w", ...)) and the HTTP layer matches with errors.Is.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrUserNotFound       = errors.New("user not found")
	ErrScheduleNotFound   = errors.New("travel schedule not found")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrNotificationFailed = errors.New("notification failed")
)
