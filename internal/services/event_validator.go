package services

import "eventsapi/internal/domain"

const codeWrongValue = "wrongValue"

// EventValidator applies the business rules an event payload must satisfy beyond
// its structural shape. Invalid input is reported as field errors, never as an error value.
type EventValidator struct{}

// Validate returns the field errors for p in rule order. An empty result means valid.
func (EventValidator) Validate(p domain.EventPayload) []domain.FieldError {
	var errs []domain.FieldError

	// maxPrice 0 means no upper bound.
	if p.MaxPrice != 0 && p.BasePrice > p.MaxPrice {
		errs = append(errs, domain.FieldError{
			ObjectName:     domain.EventObjectName,
			Field:          "basePrice",
			RejectedValue:  p.BasePrice,
			Code:           codeWrongValue,
			DefaultMessage: "wrong price: basePrice must not exceed maxPrice",
		})
	}

	end := p.EndEventDateTime
	if end.Before(p.BeginEventDateTime) || end.Before(p.CloseEnrollmentDateTime) || end.Before(p.BeginEnrollmentDateTime) {
		errs = append(errs, domain.FieldError{
			ObjectName:     domain.EventObjectName,
			Field:          "endEventDateTime",
			RejectedValue:  end.String(),
			Code:           codeWrongValue,
			DefaultMessage: "wrong dates: endEventDateTime must not be before the event or enrollment dates",
		})
	}

	return errs
}
