package helpers

import (
	"crypto/tls"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventsapi/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "http://api.example.com/events", nil)
	WriteFieldErrors(rec, r, []domain.FieldError{
		{ObjectName: "eventDto", Field: "basePrice", RejectedValue: 10000, Code: "wrongValue", DefaultMessage: "wrong price"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, HALContentType, rec.Header().Get("Content-Type"))

	var body struct {
		Content []map[string]any `json:"content"`
		Links   map[string]Link  `json:"_links"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Content, 1)
	assert.Equal(t, "eventDto", body.Content[0]["objectName"])
	assert.Equal(t, "basePrice", body.Content[0]["field"])
	assert.Equal(t, float64(10000), body.Content[0]["rejectedValue"])
	assert.Equal(t, "wrongValue", body.Content[0]["code"])
	assert.Equal(t, "http://api.example.com/", body.Links["index"].Href)
}

func TestBaseURL(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://localhost:8080/events", nil)
	assert.Equal(t, "http://localhost:8080", BaseURL(r))

	r.TLS = &tls.ConnectionState{}
	assert.Equal(t, "https://localhost:8080", BaseURL(r))

	r.Header.Set("X-Forwarded-Proto", "http")
	r.Header.Set("X-Forwarded-Host", "evil.example.com")
	assert.Equal(t, "https://localhost:8080", BaseURL(r), "raw forwarded headers are ignored")

	r = r.WithContext(WithForwardedOrigin(r.Context(), "http", "events.example.com"))
	assert.Equal(t, "http://events.example.com", BaseURL(r))

	r = r.WithContext(WithForwardedOrigin(r.Context(), "", "events.example.com"))
	assert.Equal(t, "https://events.example.com", BaseURL(r))
}
