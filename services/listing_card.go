package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"apartlive-server/models"
	"apartlive-server/storage"
	"apartlive-server/utils"
)

var (
	ErrLoginToReview = errors.New("please log in to leave a review")
	ErrNotBooked     = errors.New("you can only leave a review for booked apartments")
	ErrEmptyReview   = errors.New("review text cannot be empty")
)

// ReviewView is one review prepared for display: author names normalized,
// timestamp formatted.
type ReviewView struct {
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Posted    string    `json:"posted"`
}

// ListingCard is the per-listing view held by one shell: the photo carousel
// position and the review list. Each card fetches its own reviews; there is
// no cache shared between cards.
type ListingCard struct {
	mu         sync.Mutex
	shell      *AppShell
	index      int
	photo      int
	reviews    []ReviewView
	submitting bool
}

func newListingCard(shell *AppShell, index int) *ListingCard {
	return &ListingCard{shell: shell, index: index}
}

// Photo is the current carousel position.
func (c *ListingCard) Photo() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.photo
}

// NextPhoto advances the carousel circularly: i -> (i+1) mod L. A no-op when
// the listing has at most one photo.
func (c *ListingCard) NextPhoto() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.photoCount()
	if count > 0 {
		c.photo = (c.photo + 1) % count
	}
	return c.photo
}

// PrevPhoto steps the carousel back circularly: i -> (i-1+L) mod L.
func (c *ListingCard) PrevPhoto() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := c.photoCount()
	if count > 0 {
		c.photo = (c.photo - 1 + count) % count
	}
	return c.photo
}

func (c *ListingCard) photoCount() int {
	view, err := c.shell.ListingAt(c.index)
	if err != nil {
		return 0
	}
	return len(view.Apartment.PhotoURLs())
}

// LoadReviews fetches every review for this listing newest-first and
// normalizes missing author names before holding the list for display. The
// previous list is kept when the fetch fails.
func (c *ListingCard) LoadReviews() error {
	view, err := c.shell.ListingAt(c.index)
	if err != nil {
		return err
	}

	var reviews []models.Review
	err = storage.DB.
		Where("apartment_id = ?", view.Apartment.ID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return err
	}

	loaded := make([]ReviewView, 0, len(reviews))
	for _, review := range reviews {
		loaded = append(loaded, ReviewView{
			FirstName: review.AuthorFirstName(),
			LastName:  review.LastName,
			Text:      review.Text,
			Timestamp: review.CreatedAt,
			Posted:    utils.FormatTimestamp(review.CreatedAt),
		})
	}

	c.mu.Lock()
	c.reviews = loaded
	c.mu.Unlock()
	return nil
}

// Reviews returns the currently held list.
func (c *ListingCard) Reviews() []ReviewView {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ReviewView, len(c.reviews))
	copy(out, c.reviews)
	return out
}

// SubmitReview gates, writes and refetches. The checks run in order and each
// failure short-circuits without a store write: the session must be present,
// the shell's Booked flag for this listing must be true, and the text must be
// non-empty after trimming. On success the author's stored display names are
// attached (with sentinel fallbacks), the review is created with a
// store-assigned timestamp, and the list is re-fetched in full so its order
// matches store semantics.
func (c *ListingCard) SubmitReview(text string) error {
	session := c.shell.Session()
	if session == nil {
		return ErrLoginToReview
	}
	if !c.shell.Booked(c.index) {
		return ErrNotBooked
	}
	body := strings.TrimSpace(text)
	if body == "" {
		return ErrEmptyReview
	}

	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil
	}
	c.submitting = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	view, err := c.shell.ListingAt(c.index)
	if err != nil {
		return err
	}

	firstName, lastName := reviewAuthor(session.UserID)
	review := models.Review{
		ApartmentID: view.Apartment.ID,
		UserID:      session.UserID,
		Text:        body,
		FirstName:   firstName,
		LastName:    lastName,
	}
	if err := storage.DB.Create(&review).Error; err != nil {
		return err
	}

	return c.LoadReviews()
}

// reviewAuthor looks up the submitting user's display names, falling back to
// the sentinels when the profile row or a field is missing.
func reviewAuthor(userID uint) (string, string) {
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
