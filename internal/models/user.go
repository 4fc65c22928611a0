package models

import "time"

const (
	RoleSuperadmin = "superadmin"
	RoleBarber     = "barber"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone    string `gorm:"size:20" json:"phone"`
	Bio      string `gorm:"size:500" json:"bio"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`
	Role     string `gorm:"size:20;default:'barber'" json:"role"`
	Active   bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
