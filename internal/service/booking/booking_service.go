package booking

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wittybrains/busbooking/internal/domain"
	"github.com/wittybrains/busbooking/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Booking, error)
	FindDetails(ctx context.Context, filter domain.BookingDetailsFilter) (*domain.BookingDetails, error)
	ExpireStaleBookings(ctx context.Context) (int, error)
}

// Notifier sends a booking notification to the recipient address. A failure
// surfaces to the caller but never rolls back the persisted booking.
type Notifier interface {
	Send(ctx context.Context, subject string, booking *domain.Booking, recipientEmail string) error
}

// EntityRef is a reference to a user or schedule by id. A nil ID means the
// reference was not supplied, which matters for partial updates.
type EntityRef struct {
	ID *int64 `json:"id"`
}

type CreateBookingInput struct {
	User        *EntityRef `json:"user"`
	Schedule    *EntityRef `json:"schedule"`
	BookingTime *time.Time `json:"booking_time"`
	// Status is accepted on the wire but ignored: new bookings always start
	// out pending.
	Status string `json:"status,omitempty"`
}

type UpdateBookingInput struct {
	User     *EntityRef `json:"user"`
	Schedule *EntityRef `json:"schedule"`
}

const notificationSubject = "Booking notification"

type BookingService struct {
	bookings    repository.BookingRepository
	schedules   repository.ScheduleRepository
	users       repository.UserRepository
	notifier    Notifier
	expireAfter time.Duration
}

func NewBookingService(
	bookings repository.BookingRepository,
	schedules repository.ScheduleRepository,
	users repository.UserRepository,
	notifier Notifier,
	expireAfter time.Duration,
) *BookingService {
	return &BookingService{
		bookings:    bookings,
		schedules:   schedules,
		users:       users,
		notifier:    notifier,
		expireAfter: expireAfter,
	}
}

func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.Schedule == nil || input.Schedule.ID == nil {
		return nil, fmt.Errorf("%w: schedule id cannot be null", domain.ErrInvalidArgument)
	}
	if input.User == nil || input.User.ID == nil {
		return nil, fmt.Errorf("%w: user id cannot be null", domain.ErrInvalidArgument)
	}

	user, err := s.users.GetByID(ctx, *input.User.ID)
	if err != nil {
		return nil, err
	}
	schedule, err := s.schedules.GetByID(ctx, *input.Schedule.ID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:      user.ID,
		ScheduleID:  schedule.ID,
		Status:      domain.BookingStatusPending,
		BookingTime: input.BookingTime,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	log.Printf("created booking %d for user %d on schedule %d", booking.ID, user.ID, schedule.ID)

	if s.notifier != nil {
		if err := s.notifier.Send(ctx, notificationSubject, booking, user.Email); err != nil {
			// The booking is already committed; only the notification failed.
			return booking, fmt.Errorf("%w: %v", domain.ErrNotificationFailed, err)
		}
	}
	return booking, nil
}

func (s *BookingService) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Update has partial semantics: a reference omitted from the input leaves the
// stored reference unchanged, a supplied one is re-resolved first.
func (s *BookingService) Update(ctx context.Context, id int64, input UpdateBookingInput) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.User != nil && input.User.ID != nil {
		user, err := s.users.GetByID(ctx, *input.User.ID)
		if err != nil {
			return nil, err
		}
		booking.UserID = user.ID
	}
	if input.Schedule != nil && input.Schedule.ID != nil {
		schedule, err := s.schedules.GetByID(ctx, *input.Schedule.ID)
		if err != nil {
			return nil, err
		}
		booking.ScheduleID = schedule.ID
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	return s.bookings.Delete(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// FindDetails runs the composite bus/user/route/driver filter and returns the
// reduced projection of the first match, or nil when nothing matches.
func (s *BookingService) FindDetails(ctx context.Context, filter domain.BookingDetailsFilter) (*domain.BookingDetails, error) {
	return s.bookings.FindDetails(ctx, filter)
}

// ExpireStaleBookings is one pass of the recurring sweep: every booking still
// in a live status whose booking time lies at least expireAfter in the past
// goes inactive. Bookings without a booking time are never touched. A failed
// update is logged and skipped so the rest of the batch still runs.
func (s *BookingService) ExpireStaleBookings(ctx context.Context) (int, error) {
	bookings, err := s.bookings.ListByStatus(ctx, domain.SweepStatuses)
	if err != nil {
		return 0, err
	}

	now := time.Now()
	expired := 0
	for _, b := range bookings {
		if b.BookingTime == nil || now.Sub(*b.BookingTime) < s.expireAfter {
			continue
		}
		if err := s.bookings.UpdateStatus(ctx, b.ID, domain.BookingStatusInactive); err != nil {
			log.Printf("expire booking %d: %v", b.ID, err)
			continue
		}
		expired++
	}
	return expired, nil
}

var _ BookingUseCase = (*BookingService)(nil)
