package services

import (
	"context"
	"fmt"
	"time"

	"eventsapi/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	validator      EventValidator
	now            func() time.Time
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListEvents(ctx context.Context, pageable domain.Pageable) (*domain.Page[*domain.Event], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.List(ctx, pageable)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	return domain.NewPage(events, pageable, total), nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) CreateEvent(ctx context.Context, payload domain.EventPayload, caller *domain.Account) (*domain.Event, []domain.FieldError, error) {
	if caller == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	if errs := s.validator.Validate(payload); len(errs) > 0 {
		return nil, errs, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	now := s.now().UTC()
	event := domain.NewEvent(payload, caller, now, now)
	event.Update()
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil, nil
}

// UpdateEvent validates before touching the store, so a bad payload for a missing
// event is reported as a validation failure.
func (s *eventService) UpdateEvent(ctx context.Context, id int64, payload domain.EventPayload, caller *domain.Account) (*domain.Event, []domain.FieldError, error) {
	if caller == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	if errs := s.validator.Validate(payload); len(errs) > 0 {
		return nil, errs, nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !existing.ManagedBy(caller) {
		return nil, nil, domain.ErrForbidden
	}

	existing.Apply(payload)
	existing.Update()
	existing.UpdatedAt = s.now().UTC()
	if err := s.eventRepo.Update(ctx, existing); err != nil {
		return nil, nil, fmt.Errorf("update event: %w", err)
	}
	return existing, nil, nil
}
