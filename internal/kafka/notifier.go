package kafka

import (
	"context"
	"strconv"

	"github.com/wittybrains/busbooking/internal/domain"
)

// Notifier adapts the producer to the notification contract used by the
// booking service: delivery itself happens in the worker consuming the topic.
type Notifier struct {
	producer *Producer
	topic    string
}

func NewNotifier(producer *Producer, topic string) *Notifier {
	return &Notifier{producer: producer, topic: topic}
}

func (n *Notifier) Send(ctx context.Context, subject string, booking *domain.Booking, recipientEmail string) error {
	if n.producer == nil || n.topic == "" {
		return nil
	}
	event := BookingEvent{
		Subject:     subject,
		BookingID:   booking.ID,
		UserID:      booking.UserID,
		ScheduleID:  booking.ScheduleID,
		Status:      string(booking.Status),
		BookingTime: booking.BookingTime,
		Email:       recipientEmail,
	}
	return n.producer.Publish(ctx, n.topic, strconv.FormatInt(booking.ID, 10), event)
}
