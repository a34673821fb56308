package services

import (
	"testing"

	"apartlive-server/models"
	"apartlive-server/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeStartsUnbooked(t *testing.T) {
	setupTestDB(t)
	first := seedApartment(t, "Riverside flat", "a.jpg")
	seedApartment(t, "City loft", "b.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")

	// A stored booking from an earlier run must not leak into a new shell.
	_, err := UpsertBooking(user.ID, first.ID)
	require.NoError(t, err)

	shell := openShell(t, user, NewSessionFeed())

	require.Equal(t, 2, shell.Len())
	for i := 0; i < shell.Len(); i++ {
		assert.False(t, shell.Booked(i))
	}
}

func TestBookFlipsFlagAfterWrite(t *testing.T) {
	setupTestDB(t)
	apartment := seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	require.NoError(t, shell.Book(0))
	assert.True(t, shell.Booked(0))

	var count int64
	storage.DB.Model(&models.Booking{}).
		Where("user_id = ? AND apartment_id = ?", user.ID, apartment.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBookTwiceKeepsOneRecord(t *testing.T) {
	setupTestDB(t)
	apartment := seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	require.NoError(t, shell.Book(0))
	require.NoError(t, shell.Book(0))

	var count int64
	storage.DB.Model(&models.Booking{}).
		Where("user_id = ? AND apartment_id = ?", user.ID, apartment.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)
	assert.True(t, shell.Booked(0))
}

func TestBookWithoutSession(t *testing.T) {
	setupTestDB(t)
	seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	shell.OnSessionChange(nil)

	assert.ErrorIs(t, shell.Book(0), ErrLoginToBook)
	assert.ErrorIs(t, shell.Cancel(0), ErrLoginToCancel)

	var count int64
	storage.DB.Model(&models.Booking{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestBookIndexOutOfRange(t *testing.T) {
	setupTestDB(t)
	seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	assert.ErrorIs(t, shell.Book(-1), ErrListingIndex)
	assert.ErrorIs(t, shell.Book(1), ErrListingIndex)
}

func TestCancelWithoutBooking(t *testing.T) {
	setupTestDB(t)
	seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	require.NoError(t, shell.Cancel(0))
	assert.False(t, shell.Booked(0))
}

func TestCancelRemovesRecordAndFlag(t *testing.T) {
	setupTestDB(t)
	apartment := seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	require.NoError(t, shell.Book(0))
	require.NoError(t, shell.Cancel(0))

	assert.False(t, shell.Booked(0))
	var count int64
	storage.DB.Model(&models.Booking{}).
		Where("user_id = ? AND apartment_id = ?", user.ID, apartment.ID).
		Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestSessionLossResetsEveryFlag(t *testing.T) {
	setupTestDB(t)
	first := seedApartment(t, "Riverside flat", "a.jpg")
	seedApartment(t, "City loft", "b.jpg")
	third := seedApartment(t, "Garden studio", "c.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	require.NoError(t, shell.Book(0))
	require.NoError(t, shell.Book(2))

	shell.OnSessionChange(nil)

	views := shell.Snapshot()
	require.Len(t, views, 3)
	assert.Equal(t, first.ID, views[0].Apartment.ID)
	assert.Equal(t, third.ID, views[2].Apartment.ID)
	for _, view := range views {
		assert.False(t, view.Booked)
	}

	// Stored bookings survive the reset.
	var count int64
	storage.DB.Model(&models.Booking{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestSignOutOnFeedResetsOnlyThatUser(t *testing.T) {
	setupTestDB(t)
	seedApartment(t, "Riverside flat", "a.jpg")
	olena := seedUser(t, "Olena", "Koval", "olena@example.com")
	marko := seedUser(t, "Marko", "Bondar", "marko@example.com")

	feed := NewSessionFeed()
	olenaShell := openShell(t, olena, feed)
	markoShell := openShell(t, marko, feed)

	require.NoError(t, olenaShell.Book(0))
	require.NoError(t, markoShell.Book(0))

	feed.SignOut(olena.ID)

	assert.False(t, olenaShell.Booked(0))
	assert.True(t, markoShell.Booked(0))
	assert.Nil(t, olenaShell.Session())
	assert.NotNil(t, markoShell.Session())
}

func TestCloseUnsubscribesIdempotently(t *testing.T) {
	setupTestDB(t)
	seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")

	feed := NewSessionFeed()
	shell := openShell(t, user, feed)
	require.NoError(t, shell.Book(0))

	shell.Close()
	shell.Close()

	// After Close the feed no longer reaches the shell.
	feed.SignOut(user.ID)
	assert.True(t, shell.Booked(0))
}

func TestIndexOf(t *testing.T) {
	setupTestDB(t)
	seedApartment(t, "Riverside flat", "a.jpg")
	second := seedApartment(t, "City loft", "b.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")
	shell := openShell(t, user, NewSessionFeed())

	assert.Equal(t, 1, shell.IndexOf(second.ID))
	assert.Equal(t, -1, shell.IndexOf(999))
}

func TestRegistryOpenReplacesShell(t *testing.T) {
	setupTestDB(t)
	seedApartment(t, "Riverside flat", "a.jpg")
	user := seedUser(t, "Olena", "Koval", "olena@example.com")

	registry := NewShellRegistry(NewSessionFeed())
	identity := Identity{UserID: user.ID, FirstName: user.FirstName, LastName: user.LastName}

	first, err := registry.Open(identity)
	require.NoError(t, err)
	require.NoError(t, first.Book(0))

	second, err := registry.Open(identity)
	require.NoError(t, err)

	// A fresh shell starts unbooked even though the record persists.
	assert.False(t, second.Booked(0))

	got, ok := registry.Get(user.ID)
	require.True(t, ok)
	assert.Same(t, second, got)

	registry.Remove(user.ID)
	_, ok = registry.Get(user.ID)
	assert.False(t, ok)
}
