package routes

import (
	"fmt"
	"testing"
	"time"

	"apartlive-server/models"
	"apartlive-server/storage"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Apartment{},
		&models.Booking{},
		&models.Review{},
	))

	storage.DB = db
}

func TestFetchApartmentReviewsOrdering(t *testing.T) {
	setupTestDB(t)

	apartment := models.Apartment{Name: "Riverside flat", Photos: datatypes.JSON([]byte(`["a.jpg"]`))}
	require.NoError(t, storage.DB.Create(&apartment).Error)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, text := range []string{"second", "first", "third"} {
		offsets := []time.Duration{time.Hour, 0, 2 * time.Hour}
		review := models.Review{ApartmentID: apartment.ID, UserID: 1, Text: text, FirstName: "Olena"}
		review.CreatedAt = base.Add(offsets[i])
		require.NoError(t, storage.DB.Create(&review).Error)
	}

	reviews, err := fetchApartmentReviews(apartment.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "third", reviews[0].Text)
	assert.Equal(t, "second", reviews[1].Text)
	assert.Equal(t, "first", reviews[2].Text)
}

func TestFetchApartmentReviewsNormalizesNames(t *testing.T) {
	setupTestDB(t)

	apartment := models.Apartment{Name: "Riverside flat"}
	require.NoError(t, storage.DB.Create(&apartment).Error)

	review := models.Review{ApartmentID: apartment.ID, UserID: 1, Text: "nice"}
	require.NoError(t, storage.DB.Create(&review).Error)

	reviews, err := fetchApartmentReviews(apartment.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Unknown", reviews[0].FirstName)
	assert.Equal(t, "", reviews[0].LastName)
	assert.NotEmpty(t, reviews[0].Posted)
}

func TestReviewAuthorNamesFallback(t *testing.T) {
	setupTestDB(t)

	user := models.User{FirstName: "Olena", LastName: "Koval", Email: "olena@example.com"}
	require.NoError(t, storage.DB.Create(&user).Error)

	first, last := reviewAuthorNames(user.ID)
	assert.Equal(t, "Olena", first)
	assert.Equal(t, "Koval", last)

	// Missing profile row falls back to the sentinels.
	first, last = reviewAuthorNames(999)
	assert.Equal(t, "Unknown", first)
	assert.Equal(t, "", last)
}
