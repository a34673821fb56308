package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionFeedDeliversToSubscribers(t *testing.T) {
	feed := NewSessionFeed()

	var got []SessionEvent
	unsubscribe := feed.Subscribe(func(ev SessionEvent) {
		got = append(got, ev)
	})
	defer unsubscribe()

	feed.SignIn(Identity{UserID: 7, FirstName: "Olena"})
	feed.SignOut(7)

	assert.Len(t, got, 2)
	assert.EqualValues(t, 7, got[0].UserID)
	assert.NotNil(t, got[0].Identity)
	assert.Nil(t, got[1].Identity)
}

func TestSessionFeedUnsubscribeStopsDelivery(t *testing.T) {
	feed := NewSessionFeed()

	calls := 0
	unsubscribe := feed.Subscribe(func(SessionEvent) { calls++ })

	feed.SignOut(1)
	unsubscribe()
	unsubscribe() // second call is harmless
	feed.SignOut(1)

	assert.Equal(t, 1, calls)
}

func TestSessionFeedMultipleSubscribers(t *testing.T) {
	feed := NewSessionFeed()

	a, b := 0, 0
	feed.Subscribe(func(SessionEvent) { a++ })
	feed.Subscribe(func(SessionEvent) { b++ })

	feed.SignIn(Identity{UserID: 1})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
