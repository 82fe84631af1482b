package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventsapi/internal/delivery/http/helpers"
	"eventsapi/internal/delivery/http/middleware"
	"eventsapi/internal/domain"
	"eventsapi/internal/metrics"
)

const eventsPath = "/events"

// EventRequest is the body of POST /events and PUT /events/{id}. Unknown fields,
// including id, free, offline, eventStatus and manager, are ignored.
type EventRequest struct {
	Name                    string                `json:"name" validate:"notblank"`
	Description             string                `json:"description" validate:"notblank"`
	BeginEnrollmentDateTime *domain.LocalDateTime `json:"beginEnrollmentDateTime" validate:"required" swaggertype:"string" example:"2018-11-23T14:21:00"`
	CloseEnrollmentDateTime *domain.LocalDateTime `json:"closeEnrollmentDateTime" validate:"required" swaggertype:"string" example:"2018-11-24T14:21:00"`
	BeginEventDateTime      *domain.LocalDateTime `json:"beginEventDateTime" validate:"required" swaggertype:"string" example:"2018-11-25T14:21:00"`
	EndEventDateTime        *domain.LocalDateTime `json:"endEventDateTime" validate:"required" swaggertype:"string" example:"2018-11-26T14:21:00"`
	Location                string                `json:"location"`
	BasePrice               int                   `json:"basePrice" validate:"min=0"`
	MaxPrice                int                   `json:"maxPrice" validate:"min=0"`
	LimitOfEnrollment       int                   `json:"limitOfEnrollment" validate:"min=0"`
}

// Payload converts a structurally valid request into the domain payload.
func (req EventRequest) Payload() domain.EventPayload {
	return domain.EventPayload{
		Name:                    req.Name,
		Description:             req.Description,
		BeginEnrollmentDateTime: deref(req.BeginEnrollmentDateTime),
		CloseEnrollmentDateTime: deref(req.CloseEnrollmentDateTime),
		BeginEventDateTime:      deref(req.BeginEventDateTime),
		EndEventDateTime:        deref(req.EndEventDateTime),
		Location:                req.Location,
		BasePrice:               req.BasePrice,
		MaxPrice:                req.MaxPrice,
		LimitOfEnrollment:       req.LimitOfEnrollment,
	}
}

func deref(d *domain.LocalDateTime) domain.LocalDateTime {
	if d == nil {
		return domain.LocalDateTime{}
	}
	return *d
}

// EventModel is an event with its HAL links.
// swagger:model EventModel
type EventModel struct {
	*domain.Event
	Links helpers.Links `json:"_links"`
}

// EventList is the _embedded object of a paged event collection.
type EventList struct {
	Events []EventModel `json:"eventList"`
}

// EventPageModel is the HAL representation of one page of events.
// swagger:model EventPageModel
type EventPageModel struct {
	Embedded *EventList           `json:"_embedded,omitempty"`
	Links    helpers.Links        `json:"_links"`
	Page     helpers.PageMetadata `json:"page"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns one page of events, visible to anyone. page is zero-based; sort is property[,asc|desc] and may be repeated. A create-event link is included for authenticated callers.
// @Tags events
// @Produce json
// @Param page query int false "Zero-based page index" default(0)
// @Param size query int false "Page size (max 100)" default(20)
// @Param sort query []string false "Sort order, e.g. name,DESC" collectionFormat(multi)
// @Success 200 {object} controllers.EventPageModel
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	pageable := helpers.ParsePageable(r)
	page, err := c.Service.ListEvents(r.Context(), pageable)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSort) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.fail(w, r, err)
		return
	}

	body := EventPageModel{
		Links: helpers.PageLinks(r, eventsPath, pageable, page),
		Page:  helpers.NewPageMetadata(page),
	}
	if len(page.Content) > 0 {
		list := &EventList{Events: make([]EventModel, 0, len(page.Content))}
		for _, e := range page.Content {
			list.Events = append(list.Events, EventModel{Event: e, Links: helpers.Links{}.Add("self", eventURL(r, e.ID))})
		}
		body.Embedded = list
	}
	body.Links.Add("profile", helpers.ProfileLink(r, "events/get_events"))
	if middleware.CurrentAccount(r.Context()) != nil {
		body.Links.Add("create-event", helpers.BaseURL(r)+eventsPath)
	}
	helpers.WriteHAL(w, http.StatusOK, body)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns one event. An update-event link is included when the caller manages the event.
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} controllers.EventModel
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEvent(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}

	self := eventURL(r, event.ID)
	links := helpers.Links{}.
		Add("self", self).
		Add("profile", helpers.ProfileLink(r, "events/get_events__id_"))
	if event.ManagedBy(middleware.CurrentAccount(r.Context())) {
		links.Add("update-event", self)
	}
	helpers.WriteHAL(w, http.StatusOK, EventModel{Event: event, Links: links})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates a DRAFT event managed by the caller. free and offline are derived from the prices and location.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.EventModel
// @Header 201 {string} Location "URL of the created event"
// @Failure 400 {object} helpers.ErrorsModel "field errors"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CurrentAccount(r.Context())
	if caller == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if errs := helpers.DecodeFields(r, domain.EventObjectName, &req); len(errs) > 0 {
		c.rejectFields(w, r, errs)
		return
	}
	event, errs, err := c.Service.CreateEvent(r.Context(), req.Payload(), caller)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if len(errs) > 0 {
		c.rejectFields(w, r, errs)
		return
	}
	metrics.EventsCreated.Inc()

	self := eventURL(r, event.ID)
	links := helpers.Links{}.
		Add("self", self).
		Add("query-events", helpers.BaseURL(r)+eventsPath).
		Add("update-event", self).
		Add("profile", helpers.ProfileLink(r, "events/post_events"))
	w.Header().Set("Location", self)
	helpers.WriteHAL(w, http.StatusCreated, EventModel{Event: event, Links: links})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Replaces the editable fields of an event. Only the event's manager may update it; status and manager are never changed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param event body EventRequest true "Event data"
// @Success 200 {object} controllers.EventModel
// @Failure 400 {object} helpers.ErrorsModel "field errors"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CurrentAccount(r.Context())
	if caller == nil {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	id, ok := eventID(w, r)
	if !ok {
		return
	}
	var req EventRequest
	if errs := helpers.DecodeFields(r, domain.EventObjectName, &req); len(errs) > 0 {
		c.rejectFields(w, r, errs)
		return
	}
	event, errs, err := c.Service.UpdateEvent(r.Context(), id, req.Payload(), caller)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	if len(errs) > 0 {
		c.rejectFields(w, r, errs)
		return
	}
	metrics.EventsUpdated.Inc()

	links := helpers.Links{}.
		Add("self", eventURL(r, event.ID)).
		Add("profile", helpers.ProfileLink(r, "events/put_events__id_"))
	helpers.WriteHAL(w, http.StatusOK, EventModel{Event: event, Links: links})
}

func (c *EventController) rejectFields(w http.ResponseWriter, r *http.Request, errs []domain.FieldError) {
	for _, fe := range errs {
		metrics.EventValidationFailures.WithLabelValues(fe.Field).Inc()
	}
	helpers.WriteFieldErrors(w, r, errs)
}

func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "only the event manager may update this event")
	case errors.Is(err, domain.ErrUnauthorized):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
	default:
		c.fail(w, r, err)
	}
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}

// eventID parses the {id} path value. A non-numeric id cannot name an event, so it is a 404.
func eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return 0, false
	}
	return id, true
}

func eventURL(r *http.Request, id int64) string {
	return helpers.BaseURL(r) + eventsPath + "/" + strconv.FormatInt(id, 10)
}
