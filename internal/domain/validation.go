package domain

// FieldError describes one rejected value in a request payload.
// swagger:model FieldError
type FieldError struct {
	ObjectName     string `json:"objectName"`
	Field          string `json:"field"`
	RejectedValue  any    `json:"rejectedValue"`
	Code           string `json:"code"`
	DefaultMessage string `json:"defaultMessage"`
}

// Object name used for event payload errors.
const EventObjectName = "eventDto"
