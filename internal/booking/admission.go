// Package booking admits new bookings: one booking per email, treatment and
// date, whatever the slot.
package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"treatment-booking-api/internal/events"
	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

// Result is the admission outcome. A rejection is not an error.
type Result struct {
	Accepted bool
	Reason   string
	Booking  *model.Booking
}

type Controller struct {
	bookings store.Bookings
	events   events.Publisher
	log      zerolog.Logger
}

func New(bookings store.Bookings, pub events.Publisher, log zerolog.Logger) *Controller {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Controller{bookings: bookings, events: pub, log: log}
}

func rejected(date string) Result {
	return Result{Reason: fmt.Sprintf("you have booked an appointment on %s", date)}
}

// Submit stores b unless the same email already holds a booking for the
// treatment on that date. b.ID and b.CreatedAt are set on acceptance.
func (c *Controller) Submit(ctx context.Context, b model.Booking) (Result, error) {
	existing, err := c.bookings.FindBookings(ctx, store.BookingQuery{
		Email:           b.Email,
		Treatment:       b.Treatment,
		AppointmentDate: b.AppointmentDate,
	})
	if err != nil {
		return Result{}, fmt.Errorf("find bookings: %w", err)
	}
	if len(existing) > 0 {
		return rejected(b.AppointmentDate), nil
	}

	if err := c.bookings.InsertBooking(ctx, &b); err != nil {
		// lost the race to a concurrent submission
		if errors.Is(err, store.ErrDuplicate) {
			return rejected(b.AppointmentDate), nil
		}
		return Result{}, fmt.Errorf("insert booking: %w", err)
	}

	c.log.Info().
		Str("id", b.ID).
		Str("treatment", b.Treatment).
		Str("date", b.AppointmentDate).
		Str("slot", b.Slot).
		Msg("booking admitted")
	if err := c.events.Publish(ctx, events.BookingAdmitted, b); err != nil {
		c.log.Warn().Err(err).Str("id", b.ID).Msg("admission event not published")
	}
	return Result{Accepted: true, Booking: &b}, nil
}

func (c *Controller) ListForEmail(ctx context.Context, email string) ([]model.Booking, error) {
	out, err := c.bookings.FindBookings(ctx, store.BookingQuery{Email: email, AnyDate: true})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if out == nil {
		out = []model.Booking{}
	}
	return out, nil
}
