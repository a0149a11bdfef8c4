package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusWaiting  BookingStatus = "waiting"
	BookingStatusActive   BookingStatus = "active"
	BookingStatusInactive BookingStatus = "inactive"
)

// SweepStatuses are the statuses the expiration sweep loads. Inactive
// bookings are excluded, which is what makes re-running the sweep a no-op.
var SweepStatuses = []BookingStatus{
	BookingStatusWaiting,
	BookingStatusPending,
	BookingStatusActive,
}

type Booking struct {
	ID          int64
	UserID      int64
	ScheduleID  int64
	Status      BookingStatus
	BookingTime *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BookingDetails is the reduced projection returned by the composite
// bus/user/route/driver filter: only the identifying references survive.
type BookingDetails struct {
	BookingID  int64
	ScheduleID int64
	UserID     int64
}

// BookingDetailsFilter carries the optional predicates of the composite
// filter. A nil field adds no predicate; Source and Destination only take
// effect when both are set.
type BookingDetailsFilter struct {
	BusNumber   *string
	Username    *string
	Source      *string
	Destination *string
	DriverName  *string
}
