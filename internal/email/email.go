package email

import (
	"context"
	"fmt"

	"github.com/wittybrains/busbooking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s: %s (booking %d, schedule %d, status %s)\n",
		event.Email, event.Subject, event.BookingID, event.ScheduleID, event.Status)
	return nil
}
