package services

import (
	"time"

	"apartlive-server/models"
	"apartlive-server/storage"

	"gorm.io/gorm/clause"
)

// UpsertBooking writes the booking record for (user, apartment). The pair is
// unique, so a repeat call overwrites the timestamp instead of creating a
// second row.
func UpsertBooking(userID, apartmentID uint) (models.Booking, error) {
	booking := models.Booking{
		UserID:      userID,
		ApartmentID: apartmentID,
		BookedAt:    time.Now(),
	}
	err := storage.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "apartment_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"booked_at"}),
	}).Create(&booking).Error
	return booking, err
}

// DeleteBooking removes the booking record for (user, apartment). Deleting a
// record that does not exist is not an error.
func DeleteBooking(userID, apartmentID uint) error {
	return storage.DB.
		Where("user_id = ? AND apartment_id = ?", userID, apartmentID).
		Delete(&models.Booking{}).Error
}
