package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahalah/travel-gateway/internal/backend"
	"github.com/rahalah/travel-gateway/internal/chat"
	"github.com/rahalah/travel-gateway/internal/model"
	"github.com/rahalah/travel-gateway/internal/session"
	"github.com/rahalah/travel-gateway/pkg/logger"
)

type fakeBackend struct {
	resp *backend.ChatResponse
	err  error
}

func (f *fakeBackend) Send(ctx context.Context, message string, mode model.Mode, conversationID string) (*backend.ChatResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeBackend) Ping(ctx context.Context) error { return f.err }

func newTestRouter(fb backend.Client) *chi.Mux {
	log := logger.NewNop()
	reg := session.NewRegistry(time.Hour, log)
	bc := chat.NewBroadcaster()
	orch := chat.New(fb, log, bc.Publish)

	sessionHandler := NewSessionHandler(reg, bc, log)
	chatHandler := NewChatHandler(orch, reg, log)
	healthHandler := NewHealthHandler(fb)

	r := chi.NewRouter()
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)
	r.Get("/api/samples", Samples)
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Delete("/", sessionHandler.Delete)
			r.Put("/mode", sessionHandler.SwitchMode)
			r.Post("/chat", chatHandler.Send)
		})
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, StateResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var state StateResponse
	if rec.Code < 300 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	}
	return rec, state
}

func TestSessionChatFlow(t *testing.T) {
	fb := &fakeBackend{resp: &backend.ChatResponse{
		Response:  "Found one hotel.",
		SessionID: "abc123",
		Mode:      "hotel",
		SearchResults: map[string]json.RawMessage{
			"hotel": json.RawMessage(`[{"title":"Hotel X","rating_stars":4.5,"price":"$120"}]`),
		},
	}}
	r := newTestRouter(fb)

	rec, created := doJSON(t, r, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotEmpty(t, created.SessionID)
	assert.Equal(t, model.ModeTrip, created.Mode)
	assert.Empty(t, created.Messages)

	base := "/api/sessions/" + created.SessionID

	rec, state := doJSON(t, r, http.MethodPut, base+"/mode", `{"mode":"hotel"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ModeHotel, state.Mode)

	rec, state = doJSON(t, r, http.MethodPost, base+"/chat", `{"message":"Find hotels in Mecca"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc123", state.ConversationID)
	require.Len(t, state.Messages, 2)
	assert.Equal(t, model.RoleAssistant, state.Messages[1].Role)

	require.Len(t, state.Sections, 1)
	assert.Equal(t, model.CategoryHotel, state.Sections[0].Category)
	require.Len(t, state.Sections[0].Cards, 1)
	assert.Equal(t, "★★★★½", state.Sections[0].Cards[0].Stars)
	assert.Equal(t, "$120", state.Sections[0].Cards[0].Price)

	// Switching mode resets the conversation.
	rec, state = doJSON(t, r, http.MethodPut, base+"/mode", `{"mode":"flight"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, state.Messages)
	assert.Empty(t, state.ConversationID)
	assert.Empty(t, state.Sections)
}

func TestChatBackendFailureStillResolves(t *testing.T) {
	fb := &fakeBackend{err: &backend.TransportError{Kind: backend.KindHTTP, StatusCode: 500, Body: "boom"}}
	r := newTestRouter(fb)

	rec, created := doJSON(t, r, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, state := doJSON(t, r, http.MethodPost, "/api/sessions/"+created.SessionID+"/chat", `{"message":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, state.Messages, 2)
	assert.Contains(t, state.Messages[1].Content, "Status code: 500")
}

func TestChatValidation(t *testing.T) {
	r := newTestRouter(&fakeBackend{resp: &backend.ChatResponse{Response: "ok"}})

	rec, created := doJSON(t, r, http.MethodPost, "/api/sessions", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	base := "/api/sessions/" + created.SessionID

	rec, _ = doJSON(t, r, http.MethodPost, base+"/chat", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, r, http.MethodPost, base+"/chat", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, r, http.MethodPut, base+"/mode", `{"mode":"cruise"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLookupFailures(t *testing.T) {
	r := newTestRouter(&fakeBackend{})

	rec, _ := doJSON(t, r, http.MethodGet, "/api/sessions/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doJSON(t, r, http.MethodGet, "/api/sessions/0190a6be-0000-7000-8000-000000000000", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSamples(t *testing.T) {
	r := newTestRouter(&fakeBackend{})

	req := httptest.NewRequest(http.MethodGet, "/api/samples?mode=hotel", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.SampleQueriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ModeHotel, resp.Mode)
	assert.NotEmpty(t, resp.Queries)

	req = httptest.NewRequest(http.MethodGet, "/api/samples?mode=cruise", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReady(t *testing.T) {
	r := newTestRouter(&fakeBackend{})
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	r = newTestRouter(&fakeBackend{err: &backend.TransportError{Kind: backend.KindConnection}})
	req = httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
