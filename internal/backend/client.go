// Package backend implements the transport client for the Rahalah
// trip-planning API.
package backend

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rahalah/travel-gateway/internal/model"
)

// ChatRequest is the wire body for POST /api/chat. SessionID is always
// serialized: the backend contract requires the field to be a string, with
// "" meaning "no prior conversation", never null.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
}

// ChatResponse is the wire body of a successful chat turn. Absent fields
// decode to their zero values. A nil SearchResults map means the key was
// absent from the response body, which is distinct from an empty map; the
// session layer treats the former as "results unchanged" and the latter as
// "results cleared".
type ChatResponse struct {
	Response      string                     `json:"response"`
	SessionID     string                     `json:"session_id"`
	Mode          string                     `json:"mode"`
	SearchResults map[string]json.RawMessage `json:"search_results"`
}

// ErrorKind classifies transport failures.
type ErrorKind string

const (
	// KindConnection covers DNS failures, refused connections and timeouts.
	KindConnection ErrorKind = "connection"
	// KindHTTP covers non-200 responses; the status and body are retained.
	KindHTTP ErrorKind = "http"
	// KindDecode covers a 200 response whose body is not valid JSON.
	KindDecode ErrorKind = "decode"
	// KindEncode covers a request body that could not be serialized. No
	// request is sent in that case.
	KindEncode ErrorKind = "encode"
)

// TransportError is the uniform failure result of a backend call.
type TransportError struct {
	Kind       ErrorKind
	StatusCode int    // set for KindHTTP
	Body       string // response body for KindHTTP
	Err        error  // underlying cause for every kind but KindHTTP
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindHTTP:
		return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Body)
	case KindDecode:
		return fmt.Sprintf("backend response is not valid JSON: %v", e.Err)
	case KindEncode:
		return fmt.Sprintf("backend request could not be encoded: %v", e.Err)
	default:
		return fmt.Sprintf("backend unreachable: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client is the interface to the trip-planning backend.
type Client interface {
	// Send performs one chat turn. It makes a single attempt; whether to
	// retry a failed turn is the caller's decision.
	Send(ctx context.Context, message string, mode model.Mode, conversationID string) (*ChatResponse, error)

	// Ping probes the backend root endpoint. Any 200 counts as healthy,
	// regardless of body shape.
	Ping(ctx context.Context) error
}
