package models

import "time"

type Booking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	BarberID uint `gorm:"index" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	Services []BarberService `gorm:"many2many:booking_services;" json:"services"`

	// Date is YYYY-MM-DD and StartTime HH:MM:SS, both in the shop time zone.
	Date      string `gorm:"size:10;index;not null" json:"date"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	TotalPrice       float64 `json:"total_price"`
	TotalDurationMin int     `json:"total_duration_min"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
