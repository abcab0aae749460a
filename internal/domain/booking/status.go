package booking

import "github.com/BruksfildServices01/barber-booking/internal/apperr"

// ===============================
// Slot Status
// ===============================

type Status string

const (
	StatusAvailable Status = "Available"
	StatusReserved  Status = "Reserved"
)

func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusReserved
}

// ===============================
// Transitions
// ===============================

// CanReserve reports whether a slot in the current status may take a booking.
func CanReserve(current Status) error {
	if current != StatusAvailable {
		return apperr.Conflict(CodeScheduleReserved, "Selected schedule is reserved")
	}
	return nil
}

// CanRelease reports whether a slot in the current status may drop its booking.
func CanRelease(current Status) error {
	if current != StatusReserved {
		return apperr.Conflict(CodeScheduleNotReserved, "Schedule is not reserved")
	}
	return nil
}
