package domain

import "time"

type TravelSchedule struct {
	ID                 int64
	Source             string
	Destination        string
	EstimatedDeparture time.Time
	EstimatedArrival   time.Time
	BusID              int64
	DriverID           int64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ScheduleCriteria lists the optional search conditions. Nil means the
// condition is absent. Time bounds are inclusive and each bound of a pair
// can be supplied on its own.
type ScheduleCriteria struct {
	Source         *string
	Destination    *string
	BusID          *int64
	DriverID       *int64
	ArrivalStart   *time.Time
	ArrivalEnd     *time.Time
	DepartureStart *time.Time
	DepartureEnd   *time.Time
}

type Bus struct {
	ID       int64
	Number   string
	Capacity int
}

type Driver struct {
	ID   int64
	Name string
}
