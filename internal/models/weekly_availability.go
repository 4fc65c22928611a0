package models

import "time"

type WeeklyAvailability struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_weekly_barber_day;not null" json:"barber_id"`

	// 0 = Sunday, matching time.Weekday.
	DayOfWeek int `gorm:"uniqueIndex:idx_weekly_barber_day;not null" json:"day_of_week"`

	IsAvailable bool   `json:"is_available"`
	StartTime   string `gorm:"size:8" json:"start_time"`
	EndTime     string `gorm:"size:8" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
