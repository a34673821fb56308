package routes

import (
	"apartlive-server/models"
	"apartlive-server/storage"
	"apartlive-server/utils"

	"github.com/kataras/iris/v12"
)

// GetApartments returns the full listing collection. Listings are read-only
// here; an administrator maintains them out-of-band.
func GetApartments(ctx iris.Context) {
	var apartments []models.Apartment
	res := storage.DB.Order("id").Find(&apartments)

	if res.Error != nil {
		utils.CreateError(
			iris.StatusInternalServerError,
			"Error", res.Error.Error(), ctx)
		return
	}

	ctx.JSON(apartments)
}

// GetApartment returns a single listing by id.
func GetApartment(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var apartment models.Apartment
	apartmentExists := storage.DB.Where("id = ?", id).Find(&apartment)

	if apartmentExists.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if apartmentExists.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Apartment not found", ctx)
		return
	}

	ctx.JSON(apartment)
}
