package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wittybrains/busbooking/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Booking, error)
	ListByStatus(ctx context.Context, statuses []domain.BookingStatus) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	FindDetails(ctx context.Context, filter domain.BookingDetailsFilter) (*domain.BookingDetails, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, user_id, schedule_id, status, booking_time, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (user_id, schedule_id, status, booking_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`, booking.UserID, booking.ScheduleID, booking.Status, booking.BookingTime).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w for id: %d", domain.ErrBookingNotFound, id)
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET user_id=$1, schedule_id=$2, status=$3, booking_time=$4, updated_at=now()
		WHERE id=$5 RETURNING updated_at`, booking.UserID, booking.ScheduleID, booking.Status, booking.BookingTime, booking.ID)
	if err := row.Scan(&booking.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w for id: %d", domain.ErrBookingNotFound, booking.ID)
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w for id: %d", domain.ErrBookingNotFound, id)
	}
	return nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) ListByStatus(ctx context.Context, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE status = ANY($1) ORDER BY id`, values)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookings(rows)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2`, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%w for id: %d", domain.ErrBookingNotFound, id)
	}
	return nil
}

func (r *PGBookingRepository) FindDetails(ctx context.Context, filter domain.BookingDetailsFilter) (*domain.BookingDetails, error) {
	query, args := buildDetailsQuery(filter)
	row := r.db.QueryRow(ctx, query, args...)

	var d domain.BookingDetails
	if err := row.Scan(&d.BookingID, &d.ScheduleID, &d.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// buildDetailsQuery renders the composite bus/user/route/driver filter as a
// single join query. Only the first row in store order is wanted, so it
// carries a LIMIT 1. Kept as a pure function so predicate combination stays
// testable without a database.
func buildDetailsQuery(filter domain.BookingDetailsFilter) (string, []any) {
	var c conditions

	if filter.BusNumber != nil {
		c.eq("bu.number", *filter.BusNumber)
	}
	if filter.Username != nil {
		c.eq("u.username", *filter.Username)
	}
	// Route is only filtered when both ends are supplied.
	if filter.Source != nil && filter.Destination != nil {
		c.eq("s.source", *filter.Source)
		c.eq("s.destination", *filter.Destination)
	}
	if filter.DriverName != nil {
		c.eq("d.name", *filter.DriverName)
	}

	query := `SELECT b.id, b.schedule_id, b.user_id
		FROM bookings b
		JOIN travel_schedules s ON s.id = b.schedule_id
		JOIN buses bu ON bu.id = s.bus_id
		JOIN drivers d ON d.id = s.driver_id
		JOIN users u ON u.id = b.user_id` +
		c.where() + `
		ORDER BY b.id
		LIMIT 1`
	return query, c.args
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.UserID, &b.ScheduleID, &b.Status, &b.BookingTime, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
