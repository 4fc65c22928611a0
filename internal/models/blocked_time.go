package models

import "time"

// BlockedTime is a one-off range when a barber takes no bookings.
type BlockedTime struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`

	StartDatetime time.Time `gorm:"not null" json:"start_datetime"`
	EndDatetime   time.Time `gorm:"not null" json:"end_datetime"`
	AllDay        bool      `gorm:"default:false" json:"all_day"`

	Title string `gorm:"size:100" json:"title"`
	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
