package routes

import (
	"apartlive-server/models"
	"apartlive-server/services"
	"apartlive-server/storage"
	"apartlive-server/utils"

	"github.com/kataras/iris/v12"
)

// GetUserBookings returns the authenticated user's booking records with
// their apartments, newest first.
func GetUserBookings(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var bookings []models.Booking
	res := storage.DB.
		Preload("Apartment").
		Where("user_id = ?", id).
		Order("booked_at DESC").
		Find(&bookings)

	if res.Error != nil {
		utils.CreateError(
			iris.StatusInternalServerError,
			"Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(bookings)
}

// BookApartment writes the booking record for (user, apartment). Booking the
// same apartment again overwrites the record instead of duplicating it.
func BookApartment(ctx iris.Context) {
	apartmentID, err := ctx.Params().GetUint("apartmentId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Error", "Invalid apartment ID", ctx)
		return
	}

	var apartment models.Apartment
	apartmentExists := storage.DB.Where("id = ?", apartmentID).Find(&apartment)
	if apartmentExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if apartmentExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Apartment not found", ctx)
		return
	}

	userID := ctx.Values().Get("userID").(uint)
	booking, bookingErr := services.UpsertBooking(userID, apartmentID)
	if bookingErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(booking)
}

// CancelBooking deletes the booking record. Cancelling an apartment that was
// never booked succeeds without an error.
func CancelBooking(ctx iris.Context) {
	apartmentID, err := ctx.Params().GetUint("apartmentId")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, "Error", "Invalid apartment ID", ctx)
		return
	}

	userID := ctx.Values().Get("userID").(uint)
	if err := services.DeleteBooking(userID, apartmentID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusNoContent)
}
