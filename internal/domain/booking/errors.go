package booking

import "github.com/BruksfildServices01/barber-booking/internal/apperr"

const (
	CodeMissingFields       = "missing_fields"
	CodeInvalidDate         = "invalid_date"
	CodeInvalidTime         = "invalid_time"
	CodeInvalidPhone        = "invalid_phone"
	CodeMissingUser         = "missing_user"
	CodeNoAvailableSchedule = "no_available_schedule"
	CodeNoReservation       = "no_reservation"
	CodeScheduleReserved    = "schedule_reserved"
	CodeScheduleNotReserved = "schedule_not_reserved"
	CodeUserHasReservation  = "user_has_reservation"
	CodeBarberNotFound      = "barber_not_found"
)

func ErrNoAvailableSchedule() error {
	return apperr.NotFound(CodeNoAvailableSchedule, "No available schedule found")
}

func ErrNoReservation() error {
	return apperr.NotFound(CodeNoReservation, "No reservation found for this user")
}

func ErrUserHasReservation() error {
	return apperr.Conflict(CodeUserHasReservation, "User already has a reservation")
}
