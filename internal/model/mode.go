// Package model defines the data structures shared by the gateway core.
package model

import "fmt"

// Mode is the active task context that scopes a conversation and its
// search results.
type Mode string

const (
	ModeTrip   Mode = "trip"
	ModeFlight Mode = "flight"
	ModeHotel  Mode = "hotel"
)

// DefaultMode is the mode a fresh session starts in.
const DefaultMode = ModeTrip

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeTrip, ModeFlight, ModeHotel:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}
