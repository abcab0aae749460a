package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

type ReadBooking struct {
	bookings domain.BookingStore
	metrics  *metrics.Metrics
}

func NewReadBooking(bookings domain.BookingStore, m *metrics.Metrics) *ReadBooking {
	return &ReadBooking{bookings: bookings, metrics: m}
}

// Execute reads outside any transaction; it sees the last committed state.
func (uc *ReadBooking) Execute(
	ctx context.Context,
	userID string,
) (view *dto.BookingView, err error) {

	defer func(start time.Time) { uc.metrics.Observe("read", start, err) }(time.Now())

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperr.Validation(domain.CodeMissingUser, "Missing user identity")
	}

	view, err = uc.bookings.FindViewByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if view == nil {
		return nil, apperr.NotFound(domain.CodeNoReservation, "No reservation found")
	}
	return view, nil
}
