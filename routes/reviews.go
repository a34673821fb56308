package routes

import (
	"strings"
	"time"

	"apartlive-server/models"
	"apartlive-server/storage"
	"apartlive-server/utils"

	"github.com/kataras/iris/v12"
)

type CreateReviewInput struct {
	Text string `json:"text" validate:"required,max=1000"`
}

type ReviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"userID"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Posted    string    `json:"posted"`
}

// ListApartmentReviews returns an apartment's reviews newest-first with
// author names normalized for display.
func ListApartmentReviews(ctx iris.Context) {
	apartmentID := ctx.Params().GetUintDefault("apartmentId", 0)
	if apartmentID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Error", "Invalid apartment ID", ctx)
		return
	}

	reviews, err := fetchApartmentReviews(apartmentID)
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", "Failed to load reviews", ctx)
		return
	}

	ctx.JSON(reviews)
}

// CreateApartmentReview creates a review when the user holds a booking for
// the apartment and the trimmed text is non-empty, then returns the
// re-fetched list so the caller sees store ordering.
func CreateApartmentReview(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	apartmentID := ctx.Params().GetUintDefault("apartmentId", 0)
	if apartmentID == 0 {
		utils.CreateError(iris.StatusBadRequest, "Error", "Invalid apartment ID", ctx)
		return
	}

	var input CreateReviewInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		utils.CreateError(iris.StatusBadRequest, "Validation Error", "Review text cannot be empty.", ctx)
		return
	}

	var apartment models.Apartment
	if res := storage.DB.Where("id = ?", apartmentID).Find(&apartment); res.Error != nil || res.RowsAffected == 0 {
		utils.CreateError(iris.StatusNotFound, "Not Found", "Apartment not found", ctx)
		return
	}

	// The server-side gate is the stored booking record, not the client's
	// in-memory flag.
	var bookings int64
	storage.DB.Model(&models.Booking{}).
		Where("user_id = ? AND apartment_id = ?", userID, apartmentID).
		Count(&bookings)
	if bookings == 0 {
		utils.CreateError(iris.StatusForbidden, "Forbidden", "You can only leave a review for booked apartments.", ctx)
		return
	}

	firstName, lastName := reviewAuthorNames(userID)
	review := models.Review{
		ApartmentID: apartmentID,
		UserID:      userID,
		Text:        text,
		FirstName:   firstName,
		LastName:    lastName,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", "Failed to add review", ctx)
		return
	}

	reviews, err := fetchApartmentReviews(apartmentID)
	if err != nil {
		utils.CreateError(iris.StatusInternalServerError, "Error", "Failed to load reviews", ctx)
		return
	}

	ctx.JSON(reviews)
}

func fetchApartmentReviews(apartmentID uint) ([]ReviewResponse, error) {
	var reviews []models.Review
	err := storage.DB.
		Where("apartment_id = ?", apartmentID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	responses := make([]ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		responses = append(responses, ReviewResponse{
			ID:        review.ID,
			UserID:    review.UserID,
			FirstName: review.AuthorFirstName(),
			LastName:  review.LastName,
			Text:      review.Text,
			Timestamp: review.CreatedAt,
			Posted:    utils.FormatTimestamp(review.CreatedAt),
		})
	}
	return responses, nil
}

func reviewAuthorNames(userID uint) (string, string) {
	var user models.User
	query := storage.DB.
		Select("first_name", "last_name").
		Where("id = ?", userID).
		Limit(1).
		Find(&user)
	if query.Error != nil || query.RowsAffected == 0 || user.FirstName == "" {
		return "Unknown", user.LastName
	}
	return user.FirstName, user.LastName
}
