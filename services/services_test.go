package services

import (
	"fmt"
	"testing"

	"apartlive-server/models"
	"apartlive-server/storage"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// setupTestDB points storage.DB at a fresh in-memory database named after
// the test so parallel packages do not share state.
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

func seedApartment(t *testing.T, name string, photos ...string) models.Apartment {
	t.Helper()

	raw := "["
	for i, p := range photos {
		if i > 0 {
			raw += ","
		}
		raw += fmt.Sprintf("%q", p)
	}
	raw += "]"

	apartment := models.Apartment{
		Name:     name,
		Rooms:    2,
		Price:    1200,
		Features: datatypes.JSON([]byte(`["wifi","balcony"]`)),
		Photos:   datatypes.JSON([]byte(raw)),
	}
	require.NoError(t, storage.DB.Create(&apartment).Error)
	return apartment
}

func seedUser(t *testing.T, firstName, lastName, email string) models.User {
	t.Helper()

	user := models.User{FirstName: firstName, LastName: lastName, Email: email}
	require.NoError(t, storage.DB.Create(&user).Error)
	return user
}

func openShell(t *testing.T, user models.User, feed *SessionFeed) *AppShell {
	t.Helper()

	shell := NewAppShell(Identity{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
	require.NoError(t, shell.Initialize(feed))
	t.Cleanup(shell.Close)
	return shell
}
