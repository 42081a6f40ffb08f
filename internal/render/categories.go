package render

import (
	"fmt"
	"strings"

	"github.com/rahalah/travel-gateway/internal/model"
)

const fallback = "N/A"

// Card is one rendered result entry. Formatting never fails: a missing
// field degrades to its documented default.
type Card struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Stars    string   `json:"stars,omitempty"`
	Lines    []string `json:"lines,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Price    string   `json:"price,omitempty"`
	Link     string   `json:"link,omitempty"`
}

// Section groups the rendered cards of one result category.
type Section struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Cards    []Card `json:"cards"`
}

// Sections renders the categories present in rs in their stable display
// order: flights, then hotels, then places. A category with no items is
// skipped even when its key was present on the wire.
func Sections(rs model.ResultSet) []Section {
	var out []Section

	if len(rs.Flights) > 0 {
		sec := Section{Category: model.CategoryFlight, Label: "Flights"}
		for _, f := range rs.Flights {
			sec.Cards = append(sec.Cards, FlightCard(f))
		}
		out = append(out, sec)
	}
	if len(rs.Hotels) > 0 {
		sec := Section{Category: model.CategoryHotel, Label: "Hotels"}
		for _, h := range rs.Hotels {
			sec.Cards = append(sec.Cards, HotelCard(h))
		}
		out = append(out, sec)
	}
	if len(rs.Places) > 0 {
		sec := Section{Category: model.CategoryPlace, Label: "Places to Visit"}
		for _, p := range rs.Places {
			sec.Cards = append(sec.Cards, PlaceCard(p))
		}
		out = append(out, sec)
	}

	return out
}

// Categories returns the ordered category names that Sections would render.
func Categories(rs model.ResultSet) []string {
	var out []string
	for _, s := range Sections(rs) {
		out = append(out, s.Category)
	}
	return out
}

// FlightCard formats one flight result.
func FlightCard(f model.FlightResult) Card {
	return Card{
		Title: orDefault(f.Airline, "Unknown Airline"),
		Subtitle: fmt.Sprintf("From %s to %s",
			orDefault(f.Origin, "Origin"),
			orDefault(f.Destination, "Destination")),
		Lines: []string{
			"Duration: " + orDefault(f.Duration, fallback),
			"Departure: " + orDefault(f.DepartureTime, fallback),
			"Arrival: " + orDefault(f.ArrivalTime, fallback),
			fmt.Sprintf("Stops: %d", f.Stops),
		},
		Price: price(f.FormattedPrice, f.Price),
		Link:  f.BookingLink,
	}
}

// HotelCard formats one hotel result. The location line prefers the address
// field and falls back to location; amenities become tags and are omitted
// entirely when absent.
func HotelCard(h model.HotelResult) Card {
	addr := h.Address
	if addr == "" {
		addr = h.Location
	}

	return Card{
		Title: orDefault(h.Title, "Unknown Hotel"),
		Stars: Stars(h.RatingStars),
		Lines: []string{"Location: " + orDefault(addr, fallback)},
		Tags:  h.Amenities,
		Price: price(h.FormattedPrice, h.Price),
		Link:  h.BookingLink,
	}
}

// PlaceCard formats one place result.
func PlaceCard(p model.PlaceResult) Card {
	c := Card{
		Title: orDefault(p.Title, "Unknown Attraction"),
		Stars: Stars(p.RatingStars),
		Lines: []string{
			fmt.Sprintf("%d reviews", p.RatingCount),
			"Address: " + orDefault(p.Address, fallback),
		},
		Link: p.Website,
	}

	if len(p.Categories) > 0 {
		c.Lines = append(c.Lines, "Categories: "+strings.Join(p.Categories, ", "))
	}
	if p.Phone != "" {
		c.Lines = append(c.Lines, "Phone: "+p.Phone)
	}
	for _, h := range p.Hours {
		c.Lines = append(c.Lines, fmt.Sprintf("%s: %s - %s", h.Day, h.Open, h.Close))
	}

	return c
}

// price prefers the backend's preformatted price over the raw one.
func price(formatted, raw string) string {
	if formatted != "" {
		return formatted
	}
	if raw != "" {
		return raw
	}
	return fallback
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
