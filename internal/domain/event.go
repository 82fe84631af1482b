package domain

import (
	"context"
	"strings"
	"time"
)

// EventStatus is the publication state of an event.
type EventStatus string

const (
	EventStatusDraft            EventStatus = "DRAFT"
	EventStatusPublished        EventStatus = "PUBLISHED"
	EventStatusBeganEnrollment  EventStatus = "BEGAN_ENROLLMENT"
	EventStatusClosedEnrollment EventStatus = "CLOSED_ENROLLMENT"
	EventStatusStarted          EventStatus = "STARTED"
	EventStatusEnded            EventStatus = "ENDED"
)

// Event represents a conference or meetup that accounts can register for.
// Free and Offline are derived; see Update.
// swagger:model Event
type Event struct {
	ID                      int64         `json:"id"`
	Name                    string        `json:"name"`
	Description             string        `json:"description"`
	BeginEnrollmentDateTime LocalDateTime `json:"beginEnrollmentDateTime"`
	CloseEnrollmentDateTime LocalDateTime `json:"closeEnrollmentDateTime"`
	BeginEventDateTime      LocalDateTime `json:"beginEventDateTime"`
	EndEventDateTime        LocalDateTime `json:"endEventDateTime"`
	Location                string        `json:"location"`
	BasePrice               int           `json:"basePrice"`
	MaxPrice                int           `json:"maxPrice"`
	LimitOfEnrollment       int           `json:"limitOfEnrollment"`
	Offline                 bool          `json:"offline"`
	Free                    bool          `json:"free"`
	EventStatus             EventStatus   `json:"eventStatus"`
	Manager                 *AccountRef   `json:"manager"`
	CreatedAt               time.Time     `json:"-"`
	UpdatedAt               time.Time     `json:"-"`
}

// EventPayload holds the client-editable fields of an event. Identifier, status,
// manager and the derived flags are never taken from a payload.
type EventPayload struct {
	Name                    string
	Description             string
	BeginEnrollmentDateTime LocalDateTime
	CloseEnrollmentDateTime LocalDateTime
	BeginEventDateTime      LocalDateTime
	EndEventDateTime        LocalDateTime
	Location                string
	BasePrice               int
	MaxPrice                int
	LimitOfEnrollment       int
}

// NewEvent returns a DRAFT event populated from p. ID is set by the repository on create.
func NewEvent(p EventPayload, manager *Account, createdAt, updatedAt time.Time) *Event {
	e := &Event{
		EventStatus: EventStatusDraft,
		Manager:     manager.Ref(),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	e.Apply(p)
	return e
}

// Apply overlays the payload fields onto e.
func (e *Event) Apply(p EventPayload) {
	e.Name = p.Name
	e.Description = p.Description
	e.BeginEnrollmentDateTime = p.BeginEnrollmentDateTime
	e.CloseEnrollmentDateTime = p.CloseEnrollmentDateTime
	e.BeginEventDateTime = p.BeginEventDateTime
	e.EndEventDateTime = p.EndEventDateTime
	e.Location = p.Location
	e.BasePrice = p.BasePrice
	e.MaxPrice = p.MaxPrice
	e.LimitOfEnrollment = p.LimitOfEnrollment
}

// Update recomputes the derived flags from the current field values.
func (e *Event) Update() {
	e.Free = e.BasePrice == 0 && e.MaxPrice == 0
	e.Offline = strings.TrimSpace(e.Location) != ""
}

// ManagedBy reports whether caller is the event's manager.
func (e *Event) ManagedBy(caller *Account) bool {
	if e.Manager == nil || caller == nil {
		return false
	}
	return e.Manager.ID != "" && e.Manager.ID == caller.ID
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	Update(ctx context.Context, event *Event) error
	List(ctx context.Context, pageable Pageable) ([]*Event, error)
	Count(ctx context.Context) (int, error)
}

// EventService defines the event use cases. Validation failures are returned as
// field errors, not as Go errors.
type EventService interface {
	ListEvents(ctx context.Context, pageable Pageable) (*Page[*Event], error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	CreateEvent(ctx context.Context, payload EventPayload, caller *Account) (*Event, []FieldError, error)
	UpdateEvent(ctx context.Context, id int64, payload EventPayload, caller *Account) (*Event, []FieldError, error)
}
