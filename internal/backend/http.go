package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/rahalah/travel-gateway/internal/model"
	"github.com/rahalah/travel-gateway/pkg/logger"
	"github.com/rahalah/travel-gateway/pkg/metrics"
)

const chatPath = "/api/chat"

// HTTPClient talks to the Rahalah backend over HTTP/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *logger.Logger
	tracer  trace.Tracer
}

// NewHTTPClient creates a backend client for the given base URL. The timeout
// bounds each request end to end; there is no retry and no cancellation
// beyond the caller's context.
func NewHTTPClient(baseURL string, timeout time.Duration, log *logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  log,
		tracer:  otel.Tracer("backend"),
	}
}

// Send performs one chat turn against POST {base_url}/api/chat.
func (c *HTTPClient) Send(ctx context.Context, message string, mode model.Mode, conversationID string) (*ChatResponse, error) {
	ctx, span := c.tracer.Start(ctx, "backend.chat", trace.WithAttributes(
		attribute.String("chat.mode", string(mode)),
		attribute.Bool("chat.new_conversation", conversationID == ""),
	))
	defer span.End()

	body, err := json.Marshal(ChatRequest{
		Message:   message,
		SessionID: conversationID,
		Mode:      string(mode),
	})
	if err != nil {
		return nil, c.fail(span, &TransportError{Kind: KindEncode, Err: err})
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(body))
	if err != nil {
		return nil, c.fail(span, &TransportError{Kind: KindConnection, Err: err})
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordBackendRequest("error", time.Since(start).Seconds())
		return nil, c.fail(span, &TransportError{Kind: KindConnection, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	metrics.RecordBackendRequest(strconv.Itoa(resp.StatusCode), duration.Seconds())
	if err != nil {
		return nil, c.fail(span, &TransportError{Kind: KindConnection, Err: err})
	}

	if resp.StatusCode != http.StatusOK {
		// Non-200 bodies are opaque error text, not JSON.
		return nil, c.fail(span, &TransportError{
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			Body:       string(raw),
		})
	}

	var chat ChatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return nil, c.fail(span, &TransportError{Kind: KindDecode, Err: err})
	}

	c.logger.Debug("backend turn completed",
		zap.String("mode", string(mode)),
		zap.Duration("duration", duration),
		zap.Int("result_categories", len(chat.SearchResults)),
	)

	return &chat, nil
}

// Ping probes GET {base_url}/.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return &TransportError{Kind: KindConnection, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Kind: KindConnection, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return &TransportError{Kind: KindHTTP, StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *HTTPClient) fail(span trace.Span, terr *TransportError) error {
	span.SetStatus(codes.Error, string(terr.Kind))
	span.RecordError(terr)
	metrics.TransportErrorsTotal.WithLabelValues(string(terr.Kind)).Inc()
	return terr
}
