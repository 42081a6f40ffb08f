package model

import (
	"encoding/json"
)

// Known result categories. The backend may add new ones; unknown categories
// are ignored when decoding.
const (
	CategoryFlight = "flight"
	CategoryHotel  = "hotel"
	CategoryPlace  = "place"
)

// FlightResult is one flight search result. Every field is optional on the
// wire; the renderer supplies display fallbacks for missing values.
type FlightResult struct {
	Airline        string `json:"airline,omitempty"`
	Origin         string `json:"origin,omitempty"`
	Destination    string `json:"destination,omitempty"`
	Duration       string `json:"duration,omitempty"`
	DepartureTime  string `json:"departure_time,omitempty"`
	ArrivalTime    string `json:"arrival_time,omitempty"`
	Stops          int    `json:"stops,omitempty"`
	Price          string `json:"price,omitempty"`
	FormattedPrice string `json:"formatted_price,omitempty"`
	BookingLink    string `json:"booking_link,omitempty"`
}

// HotelResult is one hotel search result.
type HotelResult struct {
	Title          string   `json:"title,omitempty"`
	RatingStars    float64  `json:"rating_stars,omitempty"`
	Address        string   `json:"address,omitempty"`
	Location       string   `json:"location,omitempty"`
	Amenities      []string `json:"amenities,omitempty"`
	Price          string   `json:"price,omitempty"`
	FormattedPrice string   `json:"formatted_price,omitempty"`
	BookingLink    string   `json:"booking_link,omitempty"`
}

// OpeningHours is one day/open/close triple for a place.
type OpeningHours struct {
	Day   string `json:"day,omitempty"`
	Open  string `json:"open,omitempty"`
	Close string `json:"close,omitempty"`
}

// PlaceResult is one place/attraction search result.
type PlaceResult struct {
	Title       string         `json:"title,omitempty"`
	RatingStars float64        `json:"rating_stars,omitempty"`
	RatingCount int            `json:"rating_count,omitempty"`
	Address     string         `json:"address,omitempty"`
	Categories  []string       `json:"categories,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	Website     string         `json:"website,omitempty"`
	Hours       []OpeningHours `json:"hours,omitempty"`
}

// ResultSet holds the categorized search results from the most recent
// backend response that carried a search_results mapping.
type ResultSet struct {
	Flights []FlightResult `json:"flight,omitempty"`
	Hotels  []HotelResult  `json:"hotel,omitempty"`
	Places  []PlaceResult  `json:"place,omitempty"`
}

// IsZero reports whether no category holds any items.
func (rs ResultSet) IsZero() bool {
	return len(rs.Flights) == 0 && len(rs.Hotels) == 0 && len(rs.Places) == 0
}

// Count returns the number of items in the named category.
func (rs ResultSet) Count(category string) int {
	switch category {
	case CategoryFlight:
		return len(rs.Flights)
	case CategoryHotel:
		return len(rs.Hotels)
	case CategoryPlace:
		return len(rs.Places)
	}
	return 0
}

// ParseResults converts the wire search_results mapping into a typed
// ResultSet. A category that fails to decode is dropped rather than failing
// the turn; result records are display data, not load-bearing state.
func ParseResults(raw map[string]json.RawMessage) ResultSet {
	var rs ResultSet
	if v, ok := raw[CategoryFlight]; ok {
		_ = json.Unmarshal(v, &rs.Flights)
	}
	if v, ok := raw[CategoryHotel]; ok {
		_ = json.Unmarshal(v, &rs.Hotels)
	}
	if v, ok := raw[CategoryPlace]; ok {
		_ = json.Unmarshal(v, &rs.Places)
	}
	return rs
}
