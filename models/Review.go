package models

import "gorm.io/gorm"

// Review is free-text feedback tied to an apartment. Author names are
// denormalized onto the record at submission time so the list renders without
// a join; missing names are normalized to "Unknown" / "" on read. Reviews are
// never updated or deleted by this application. CreatedAt is the
// store-assigned timestamp used for newest-first ordering.
type Review struct {
	gorm.Model
	ApartmentID uint   `json:"apartmentID" gorm:"not null;index;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID      uint   `json:"userID" gorm:"not null;index"`
	Text        string `json:"text" gorm:"type:text"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`

	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Apartment Apartment `json:"apartment,omitempty" gorm:"foreignKey:ApartmentID"`
}

// AuthorFirstName applies the display fallback for reviews written before
// profiles carried names.
func (r *Review) AuthorFirstName() string {
	if r.FirstName == "" {
		return "Unknown"
	}
	return r.FirstName
}
