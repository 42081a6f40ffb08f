package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahalah/travel-gateway/internal/model"
)

func TestSectionsStableOrder(t *testing.T) {
	rs := model.ResultSet{
		Places:  []model.PlaceResult{{Title: "Masmak Fortress"}},
		Flights: []model.FlightResult{{Airline: "Saudia"}},
	}

	sections := Sections(rs)
	require.Len(t, sections, 2)
	assert.Equal(t, model.CategoryFlight, sections[0].Category)
	assert.Equal(t, "Flights", sections[0].Label)
	assert.Equal(t, model.CategoryPlace, sections[1].Category)
	assert.Equal(t, "Places to Visit", sections[1].Label)
}

func TestSectionsSkipsEmptyCategories(t *testing.T) {
	// A category key present on the wire with an empty item list must not
	// produce a section.
	raw := map[string]json.RawMessage{
		"flight": json.RawMessage(`[]`),
		"hotel":  json.RawMessage(`[{"title":"Hotel X"}]`),
	}

	rs := model.ParseResults(raw)
	assert.Equal(t, []string{model.CategoryHotel}, Categories(rs))
}

func TestSectionsEmptySet(t *testing.T) {
	assert.Empty(t, Sections(model.ResultSet{}))
}

func TestFlightCardDefaults(t *testing.T) {
	card := FlightCard(model.FlightResult{})

	assert.Equal(t, "Unknown Airline", card.Title)
	assert.Equal(t, "From Origin to Destination", card.Subtitle)
	assert.Contains(t, card.Lines, "Duration: N/A")
	assert.Contains(t, card.Lines, "Departure: N/A")
	assert.Contains(t, card.Lines, "Arrival: N/A")
	assert.Contains(t, card.Lines, "Stops: 0")
	assert.Equal(t, "N/A", card.Price)
	assert.Empty(t, card.Link)
}

func TestFlightCardPrefersFormattedPrice(t *testing.T) {
	card := FlightCard(model.FlightResult{Price: "450", FormattedPrice: "SAR 450"})
	assert.Equal(t, "SAR 450", card.Price)

	card = FlightCard(model.FlightResult{Price: "450"})
	assert.Equal(t, "450", card.Price)
}

func TestHotelCardAddressFallback(t *testing.T) {
	card := HotelCard(model.HotelResult{Title: "Hotel X", Address: "King Fahd Rd", Location: "Riyadh"})
	assert.Contains(t, card.Lines, "Location: King Fahd Rd")

	card = HotelCard(model.HotelResult{Title: "Hotel X", Location: "Riyadh"})
	assert.Contains(t, card.Lines, "Location: Riyadh")

	card = HotelCard(model.HotelResult{Title: "Hotel X"})
	assert.Contains(t, card.Lines, "Location: N/A")
}

func TestHotelCardAmenities(t *testing.T) {
	card := HotelCard(model.HotelResult{Title: "Hotel X", Amenities: []string{"WiFi", "Pool"}})
	assert.Equal(t, []string{"WiFi", "Pool"}, card.Tags)

	card = HotelCard(model.HotelResult{Title: "Hotel X"})
	assert.Empty(t, card.Tags)
}

func TestHotelCardStars(t *testing.T) {
	card := HotelCard(model.HotelResult{Title: "Hotel X", RatingStars: 4.5})
	assert.Equal(t, "★★★★½", card.Stars)
}

func TestPlaceCardDefaults(t *testing.T) {
	card := PlaceCard(model.PlaceResult{})

	assert.Equal(t, "Unknown Attraction", card.Title)
	assert.Contains(t, card.Lines, "0 reviews")
	assert.Contains(t, card.Lines, "Address: N/A")
	assert.NotContains(t, card.Lines, "Phone: ")
}

func TestPlaceCardOptionalFields(t *testing.T) {
	card := PlaceCard(model.PlaceResult{
		Title:       "Edge of the World",
		RatingStars: 4.9,
		RatingCount: 1200,
		Address:     "Near Riyadh",
		Categories:  []string{"Nature", "Hiking"},
		Phone:       "+966 11 000 0000",
		Website:     "https://example.com",
		Hours: []model.OpeningHours{
			{Day: "Friday", Open: "06:00", Close: "18:00"},
		},
	})

	assert.Equal(t, "★★★★½", card.Stars)
	assert.Contains(t, card.Lines, "1200 reviews")
	assert.Contains(t, card.Lines, "Categories: Nature, Hiking")
	assert.Contains(t, card.Lines, "Phone: +966 11 000 0000")
	assert.Contains(t, card.Lines, "Friday: 06:00 - 18:00")
	assert.Equal(t, "https://example.com", card.Link)
}
