package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResults(t *testing.T) {
	raw := map[string]json.RawMessage{
		"flight": json.RawMessage(`[{"airline":"Saudia","stops":1}]`),
		"hotel":  json.RawMessage(`[{"title":"Hotel X","rating_stars":4.5,"price":"$120"}]`),
		"cruise": json.RawMessage(`[{"ship":"unknown"}]`),
	}

	rs := ParseResults(raw)
	require.Len(t, rs.Flights, 1)
	assert.Equal(t, "Saudia", rs.Flights[0].Airline)
	assert.Equal(t, 1, rs.Flights[0].Stops)
	require.Len(t, rs.Hotels, 1)
	assert.Equal(t, "Hotel X", rs.Hotels[0].Title)
	assert.Equal(t, 4.5, rs.Hotels[0].RatingStars)
	assert.Empty(t, rs.Places)
}

func TestParseResultsMalformedCategory(t *testing.T) {
	// A category that fails to decode is dropped; the rest survive.
	raw := map[string]json.RawMessage{
		"flight": json.RawMessage(`{"not":"an array"}`),
		"place":  json.RawMessage(`[{"title":"Corniche"}]`),
	}

	rs := ParseResults(raw)
	assert.Empty(t, rs.Flights)
	require.Len(t, rs.Places, 1)
	assert.Equal(t, "Corniche", rs.Places[0].Title)
}

func TestResultSetCount(t *testing.T) {
	rs := ResultSet{Hotels: []HotelResult{{Title: "a"}, {Title: "b"}}}
	assert.Equal(t, 2, rs.Count(CategoryHotel))
	assert.Equal(t, 0, rs.Count(CategoryFlight))
	assert.Equal(t, 0, rs.Count("cruise"))
	assert.False(t, rs.IsZero())
	assert.True(t, ResultSet{}.IsZero())
}

func TestParseModeRejectsUnknown(t *testing.T) {
	for _, valid := range []string{"trip", "flight", "hotel"} {
		m, err := ParseMode(valid)
		require.NoError(t, err)
		assert.Equal(t, Mode(valid), m)
	}

	_, err := ParseMode("cruise")
	assert.Error(t, err)
}
