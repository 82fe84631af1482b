package helpers

import (
	"context"
	"net/http"

	"eventsapi/internal/domain"
)

// HALContentType is the media type of every hypermedia response.
const HALContentType = "application/hal+json;charset=UTF-8"

// Link is a HAL link object.
type Link struct {
	Href string `json:"href"`
}

// Links maps relation names to links and renders as a HAL _links object.
type Links map[string]Link

// Add sets rel to href and returns l for chaining.
func (l Links) Add(rel, href string) Links {
	l[rel] = Link{Href: href}
	return l
}

// ErrorsModel is the body of a 400 carrying field errors.
// swagger:model ErrorsModel
type ErrorsModel struct {
	Content []domain.FieldError `json:"content"`
	Links   Links               `json:"_links"`
}

// WriteHAL writes v as application/hal+json.
func WriteHAL(w http.ResponseWriter, statusCode int, v any) {
	WriteJSON(w, statusCode, HALContentType, v)
}

// WriteFieldErrors writes a 400 with the field errors and a link back to the API index.
func WriteFieldErrors(w http.ResponseWriter, r *http.Request, errs []domain.FieldError) {
	WriteHAL(w, http.StatusBadRequest, ErrorsModel{
		Content: errs,
		Links:   Links{}.Add("index", BaseURL(r)+"/"),
	})
}

type forwardedOriginKey struct{}

type forwardedOrigin struct {
	proto string
	host  string
}

// WithForwardedOrigin records the scheme and host reported by a trusted proxy. Empty
// values leave the request's own scheme or host in place.
func WithForwardedOrigin(ctx context.Context, proto, host string) context.Context {
	return context.WithValue(ctx, forwardedOriginKey{}, forwardedOrigin{proto: proto, host: host})
}

// BaseURL returns scheme://host for r. Forwarded headers count only when a trusted
// proxy recorded them with WithForwardedOrigin; the raw headers are ignored.
func BaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host
	if fo, ok := r.Context().Value(forwardedOriginKey{}).(forwardedOrigin); ok {
		if fo.proto != "" {
			scheme = fo.proto
		}
		if fo.host != "" {
			host = fo.host
		}
	}
	return scheme + "://" + host
}

// ProfileLink points at the API documentation for an operation.
func ProfileLink(r *http.Request, operation string) string {
	return BaseURL(r) + "/swagger/index.html#/" + operation
}
