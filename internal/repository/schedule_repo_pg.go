package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wittybrains/busbooking/internal/domain"
)

type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TravelSchedule, error)
	List(ctx context.Context) ([]domain.TravelSchedule, error)
	Search(ctx context.Context, criteria domain.ScheduleCriteria, limit, offset int) ([]domain.TravelSchedule, int, error)
}

type PGScheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(db *pgxpool.Pool) ScheduleRepository {
	return &PGScheduleRepository{db: db}
}

const scheduleColumns = `id, source, destination, estimated_departure, estimated_arrival, bus_id, driver_id, created_at, updated_at`

func (r *PGScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.TravelSchedule, error) {
	row := r.db.QueryRow(ctx, `SELECT `+scheduleColumns+` FROM travel_schedules WHERE id=$1`, id)
	s, err := scanSchedule(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w for id: %d", domain.ErrScheduleNotFound, id)
		}
		return nil, err
	}
	return s, nil
}

func (r *PGScheduleRepository) List(ctx context.Context) ([]domain.TravelSchedule, error) {
	rows, err := r.db.Query(ctx, `SELECT `+scheduleColumns+` FROM travel_schedules ORDER BY estimated_departure`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSchedules(rows)
}

// Search runs the multi-criteria query and returns one page of rows plus the
// total number of matches.
func (r *PGScheduleRepository) Search(ctx context.Context, criteria domain.ScheduleCriteria, limit, offset int) ([]domain.TravelSchedule, int, error) {
	c := scheduleConditions(criteria)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM travel_schedules`+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + scheduleColumns + ` FROM travel_schedules` + c.where() +
		fmt.Sprintf(` ORDER BY estimated_departure LIMIT $%d OFFSET $%d`, c.next(), c.next()+1)
	rows, err := r.db.Query(ctx, query, append(c.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	schedules, err := collectSchedules(rows)
	if err != nil {
		return nil, 0, err
	}
	return schedules, total, nil
}

func scheduleConditions(criteria domain.ScheduleCriteria) *conditions {
	var c conditions
	if criteria.Source != nil {
		c.eq("source", *criteria.Source)
	}
	if criteria.Destination != nil {
		c.eq("destination", *criteria.Destination)
	}
	if criteria.BusID != nil {
		c.eq("bus_id", *criteria.BusID)
	}
	if criteria.DriverID != nil {
		c.eq("driver_id", *criteria.DriverID)
	}
	if criteria.ArrivalStart != nil {
		c.gte("estimated_arrival", *criteria.ArrivalStart)
	}
	if criteria.ArrivalEnd != nil {
		c.lte("estimated_arrival", *criteria.ArrivalEnd)
	}
	if criteria.DepartureStart != nil {
		c.gte("estimated_departure", *criteria.DepartureStart)
	}
	if criteria.DepartureEnd != nil {
		c.lte("estimated_departure", *criteria.DepartureEnd)
	}
	return &c
}

func scanSchedule(row pgx.Row) (*domain.TravelSchedule, error) {
	var s domain.TravelSchedule
	if err := row.Scan(&s.ID, &s.Source, &s.Destination, &s.EstimatedDeparture, &s.EstimatedArrival, &s.BusID, &s.DriverID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSchedules(rows pgx.Rows) ([]domain.TravelSchedule, error) {
	schedules := make([]domain.TravelSchedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, rows.Err()
}

var _ ScheduleRepository = (*PGScheduleRepository)(nil)
