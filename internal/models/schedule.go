package models

// Schedule is one bookable slot of a barber. Date is stored as
// YYYY-MM-DD and Time as HH:MM so that lexical order is chronological.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"not null;uniqueIndex:idx_schedules_slot,priority:1;index:idx_schedules_barber_status,priority:1" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Date   string `gorm:"size:10;not null;uniqueIndex:idx_schedules_slot,priority:2" json:"date"`
	Time   string `gorm:"size:5;not null;uniqueIndex:idx_schedules_slot,priority:3" json:"time"`
	Status string `gorm:"size:16;not null;default:'Available';index:idx_schedules_barber_status,priority:2" json:"status"`
}
