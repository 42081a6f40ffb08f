package model

import (
	"time"
)

// Snapshot is the read-only view of a session handed to the presentation
// layer after every completed turn.
type Snapshot struct {
	SessionID      string    `json:"session_id"`
	Mode           Mode      `json:"mode"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Messages       []Message `json:"messages"`
	Results        ResultSet `json:"search_results"`
	Debug          []string  `json:"debug,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ChatTurnRequest is the request body for one conversational turn.
type ChatTurnRequest struct {
	Message string `json:"message"`
}

// SwitchModeRequest is the request body for a mode switch.
type SwitchModeRequest struct {
	Mode string `json:"mode"`
}

// SampleQueriesResponse lists the suggested queries for a mode.
type SampleQueriesResponse struct {
	Mode    Mode     `json:"mode"`
	Queries []string `json:"queries"`
}
