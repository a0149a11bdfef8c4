package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wittybrains/busbooking/internal/domain"
)

func strPtr(s string) *string        { return &s }
func int64Ptr(n int64) *int64        { return &n }
func timePtr(t time.Time) *time.Time { return &t }

func TestConditions_Empty(t *testing.T) {
	var c conditions
	assert.Equal(t, "", c.where())
	assert.Empty(t, c.args)
	assert.Equal(t, 1, c.next())
}

func TestConditions_Ordering(t *testing.T) {
	var c conditions
	c.eq("source", "A")
	c.gte("estimated_arrival", "2023-01-01")
	c.lte("estimated_arrival", "2023-02-01")

	assert.Equal(t, " WHERE source = $1 AND estimated_arrival >= $2 AND estimated_arrival <= $3", c.where())
	assert.Equal(t, []any{"A", "2023-01-01", "2023-02-01"}, c.args)
	assert.Equal(t, 4, c.next())
}

func TestBuildDetailsQuery_NoFilter(t *testing.T) {
	query, args := buildDetailsQuery(domain.BookingDetailsFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "LIMIT 1")
	assert.Empty(t, args)
}

func TestBuildDetailsQuery_AllFilters(t *testing.T) {
	query, args := buildDetailsQuery(domain.BookingDetailsFilter{
		BusNumber:   strPtr("B100"),
		Username:    strPtr("alice"),
		Source:      strPtr("Springfield"),
		Destination: strPtr("Shelbyville"),
		DriverName:  strPtr("Otto"),
	})

	assert.Contains(t, query, "bu.number = $1")
	assert.Contains(t, query, "u.username = $2")
	assert.Contains(t, query, "s.source = $3")
	assert.Contains(t, query, "s.destination = $4")
	assert.Contains(t, query, "d.name = $5")
	assert.Equal(t, []any{"B100", "alice", "Springfield", "Shelbyville", "Otto"}, args)
}

// Source without destination (and the reverse) must not add a route predicate.
func TestBuildDetailsQuery_RoutePairRule(t *testing.T) {
	query, args := buildDetailsQuery(domain.BookingDetailsFilter{Source: strPtr("Springfield")})
	assert.NotContains(t, query, "s.source")
	assert.Empty(t, args)

	query, args = buildDetailsQuery(domain.BookingDetailsFilter{Destination: strPtr("Shelbyville")})
	assert.NotContains(t, query, "s.destination")
	assert.Empty(t, args)
}

func TestScheduleConditions(t *testing.T) {
	arrivalEnd := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)
	c := scheduleConditions(domain.ScheduleCriteria{
		Source:     strPtr("Springfield"),
		BusID:      int64Ptr(7),
		ArrivalEnd: timePtr(arrivalEnd),
	})

	assert.Equal(t, " WHERE source = $1 AND bus_id = $2 AND estimated_arrival <= $3", c.where())
	assert.Equal(t, []any{"Springfield", int64(7), arrivalEnd}, c.args)
}

func TestScheduleConditions_SingleBound(t *testing.T) {
	start := time.Date(2023, 5, 1, 8, 0, 0, 0, time.UTC)
	c := scheduleConditions(domain.ScheduleCriteria{DepartureStart: timePtr(start)})

	assert.Equal(t, " WHERE estimated_departure >= $1", c.where())
}
