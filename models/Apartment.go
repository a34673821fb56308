package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Apartment is a listing record. Listings are created and maintained
// out-of-band by an administrator; this application only ever reads them.
type Apartment struct {
	gorm.Model
	Name     string         `json:"name"`
	Rooms    int            `json:"rooms"`
	Price    float32        `json:"price"`
	Features datatypes.JSON `json:"features"` // JSON array of strings
	Photos   datatypes.JSON `json:"photos"`   // JSON array of URLs

	Reviews  []Review  `json:"reviews,omitempty"`
	Bookings []Booking `json:"bookings,omitempty"`
}

// PhotoURLs decodes the Photos column. A listing with no photos yields an
// empty slice, never nil.
func (a *Apartment) PhotoURLs() []string {
	return decodeStringArray(a.Photos)
}

// FeatureList decodes the Features column.
func (a *Apartment) FeatureList() []string {
	return decodeStringArray(a.Features)
}

func decodeStringArray(raw datatypes.JSON) []string {
	out := []string{}
	if raw != nil {
		var values []string
		if err := json.Unmarshal(raw, &values); err == nil {
			out = values
		}
	}
	return out
}

// Custom JSON marshaling to expose Features and Photos as plain arrays
func (a *Apartment) MarshalJSON() ([]byte, error) {
	type Alias Apartment
	aux := &struct {
		Features []string `json:"features"`
		Photos   []string `json:"photos"`
		*Alias
	}{
		Features: a.FeatureList(),
		Photos:   a.PhotoURLs(),
		Alias:    (*Alias)(a),
	}

	return json.Marshal(aux)
}
