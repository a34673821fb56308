package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email" gorm:"uniqueIndex"`
	Password       string `json:"password"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"`

	Bookings []Booking `json:"bookings,omitempty" gorm:"foreignKey:UserID;references:ID"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"foreignKey:UserID;references:ID"`
}
