package models

import "time"

// Booking is persisted proof that a user has booked an apartment. The
// (user, apartment) pair is unique, so booking the same apartment twice
// overwrites the earlier record instead of duplicating it. No soft delete:
// cancelling removes the row outright so a later re-book starts clean.
type Booking struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userID" gorm:"not null;uniqueIndex:idx_booking_user_apartment"`
	ApartmentID uint      `json:"apartmentID" gorm:"not null;uniqueIndex:idx_booking_user_apartment"`
	BookedAt    time.Time `json:"bookedAt"`

	User      *User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Apartment *Apartment `json:"apartment,omitempty" gorm:"foreignKey:ApartmentID"`
}
