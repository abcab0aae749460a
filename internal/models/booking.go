package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// at most one booking per slot and per user
	ScheduleID uint     `gorm:"not null;uniqueIndex" json:"schedule_id"`
	Schedule   Schedule `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	UserUID    string   `gorm:"size:128;not null;uniqueIndex" json:"user_uid"`

	Name        string `gorm:"size:100;not null" json:"name"`
	PhoneNumber string `gorm:"size:20;not null" json:"phone_number"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
