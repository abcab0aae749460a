package dto

import (
	"encoding/json"
	"time"
)

// BookingView is the read-side join of booking, schedule and barber.
type BookingView struct {
	ScheduleID  uint   `json:"schedule_id"`
	BarberID    uint   `json:"barber_id"`
	Barber      string `json:"barber"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
}

type AuditEntry struct {
	ID        uint            `json:"id"`
	Action    string          `json:"action"`
	EntityID  *uint           `json:"entity_id"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

type HistoryPage struct {
	Page    int          `json:"page"`
	Limit   int          `json:"limit"`
	Total   int64        `json:"total"`
	Entries []AuditEntry `json:"entries"`
}
