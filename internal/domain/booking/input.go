package booking

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/apperr"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

// Input is the request shape shared by create and update.
type Input struct {
	UserID   string
	BarberID uint
	Date     string
	Time     string
	Name     string
	Phone    string
}

// Normalize checks every field is present and well formed and returns a
// copy in canonical form.
func (in Input) Normalize() (Input, error) {
	out := Input{
		UserID:   strings.TrimSpace(in.UserID),
		BarberID: in.BarberID,
		Name:     strings.TrimSpace(in.Name),
		Phone:    strings.TrimSpace(in.Phone),
	}

	if out.UserID == "" {
		return Input{}, apperr.Validation(CodeMissingUser, "Missing user identity")
	}

	if out.BarberID == 0 || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" ||
		out.Name == "" || out.Phone == "" {
		return Input{}, apperr.Validation(CodeMissingFields, "Missing required fields")
	}

	date, ok := validators.NormalizeDate(in.Date)
	if !ok {
		return Input{}, apperr.Validation(CodeInvalidDate, "Invalid date, expected YYYY-MM-DD")
	}
	out.Date = date

	tm, ok := validators.NormalizeTime(in.Time)
	if !ok {
		return Input{}, apperr.Validation(CodeInvalidTime, "Invalid time, expected HH:MM")
	}
	out.Time = tm

	if !validators.IsPhoneValid(out.Phone) {
		return Input{}, apperr.Validation(CodeInvalidPhone, "Invalid phone number")
	}

	return out, nil
}

// SlotQuery identifies a slot by its natural key. A nil Status matches
// any status.
type SlotQuery struct {
	BarberID uint
	Date     string
	Time     string
	Status   *Status
}

func (in Input) Slot(status *Status) SlotQuery {
	return SlotQuery{
		BarberID: in.BarberID,
		Date:     in.Date,
		Time:     in.Time,
		Status:   status,
	}
}
