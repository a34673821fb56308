package services

import (
	"errors"
	"sync"

	"apartlive-server/models"
	"apartlive-server/storage"

	"golang.org/x/exp/slices"
)

var (
	ErrLoginToBook   = errors.New("please log in to book an apartment")
	ErrLoginToCancel = errors.New("please log in to cancel a booking")
	ErrListingIndex  = errors.New("no listing at that position")
)

// ListingView is one apartment annotated with the viewer's booking state.
// The Booked flag is client-local: it is true iff this shell booked the
// apartment during its own lifetime, and it is discarded when the shell goes
// away. It is never re-derived from the booking table at render time.
type ListingView struct {
	Apartment models.Apartment `json:"apartment"`
	Booked    bool             `json:"booked"`
}

// AppShell holds the canonical listing array for one signed-in viewer,
// mirroring what the browser keeps in memory: the collection is fetched once
// at Initialize, every Booked flag starts false, and a session loss clears
// the flags without touching stored bookings. Mutations go through Book and
// Cancel only, and a flag flips only after the store write succeeds.
type AppShell struct {
	mu          sync.Mutex
	userID      uint
	session     *Identity
	listings    []ListingView
	cards       map[int]*ListingCard
	unsubscribe func()
	closeOnce   sync.Once
}

func NewAppShell(session Identity) *AppShell {
	return &AppShell{
		userID:  session.UserID,
		session: &session,
		cards:   make(map[int]*ListingCard),
	}
}

// Initialize fetches the full apartment collection once and subscribes to
// the session feed. Booking state is deliberately not loaded here; every
// listing starts unbooked regardless of what the booking table holds.
func (s *AppShell) Initialize(feed *SessionFeed) error {
	var apartments []models.Apartment
	if err := storage.DB.Order("id").Find(&apartments).Error; err != nil {
		return err
	}

	s.mu.Lock()
	s.listings = make([]ListingView, 0, len(apartments))
	for _, apartment := range apartments {
		s.listings = append(s.listings, ListingView{Apartment: apartment})
	}
	s.mu.Unlock()

	s.unsubscribe = feed.Subscribe(func(ev SessionEvent) {
		if ev.UserID != s.userID {
			return
		}
		s.OnSessionChange(ev.Identity)
	})
	return nil
}

// OnSessionChange replaces the held session. A nil session clears every
// Booked flag in place; length and ordering of the array are untouched.
func (s *AppShell) OnSessionChange(identity *Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = identity
	if identity == nil {
		for i := range s.listings {
			s.listings[i].Booked = false
		}
	}
}

// Book writes a booking record for the listing at index and flips its Booked
// flag once the write has succeeded. Booking an already-booked listing
// overwrites the record's timestamp instead of duplicating it.
func (s *AppShell) Book(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrLoginToBook
	}
	if index < 0 || index >= len(s.listings) {
		return ErrListingIndex
	}

	if _, err := UpsertBooking(s.userID, s.listings[index].Apartment.ID); err != nil {
		return err
	}

	s.listings[index].Booked = true
	return nil
}

// Cancel deletes the booking record for the listing at index and clears its
// Booked flag once the delete has succeeded. Cancelling a listing that was
// never booked is not an error.
func (s *AppShell) Cancel(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return ErrLoginToCancel
	}
	if index < 0 || index >= len(s.listings) {
		return ErrListingIndex
	}

	if err := DeleteBooking(s.userID, s.listings[index].Apartment.ID); err != nil {
		return err
	}

	s.listings[index].Booked = false
	return nil
}

// Close drops the session feed subscription. Safe to call more than once.
func (s *AppShell) Close() {
	s.closeOnce.Do(func() {
		if s.unsubscribe != nil {
			s.unsubscribe()
		}
	})
}

// Session returns the currently held identity, nil when signed out.
func (s *AppShell) Session() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *AppShell) UserID() uint {
	return s.userID
}

func (s *AppShell) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listings)
}

// ListingAt returns a copy of the annotated listing at index.
func (s *AppShell) ListingAt(index int) (ListingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.listings) {
		return ListingView{}, ErrListingIndex
	}
	return s.listings[index], nil
}

// Booked reports the client-local flag for the listing at index.
func (s *AppShell) Booked(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.listings) {
		return false
	}
	return s.listings[index].Booked
}

// IndexOf locates an apartment in the held array by its id, -1 when absent.
func (s *AppShell) IndexOf(apartmentID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.IndexFunc(s.listings, func(view ListingView) bool {
		return view.Apartment.ID == apartmentID
	})
}

// Snapshot copies the annotated array for rendering.
func (s *AppShell) Snapshot() []ListingView {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ListingView, len(s.listings))
	copy(out, s.listings)
	return out
}

// Card returns the listing card for index, creating it on first use. Cards
// load their reviews on creation; a load failure is reported but the card is
// kept with an empty list so a later reload can fill it.
func (s *AppShell) Card(index int) (*ListingCard, error) {
	s.mu.Lock()
	if index < 0 || index >= len(s.listings) {
		s.mu.Unlock()
		return nil, ErrListingIndex
	}
	card, ok := s.cards[index]
	if ok {
		s.mu.Unlock()
		return card, nil
	}
	card = newListingCard(s, index)
	s.cards[index] = card
	s.mu.Unlock()

	return card, card.LoadReviews()
}
