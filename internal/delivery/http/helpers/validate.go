package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"eventsapi/internal/domain"
)

// CodeMalformedJSON is the field error code for a body that is not valid JSON for the target type.
const CodeMalformedJSON = "malformedJson"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// ValidateStruct runs the validate struct tags on v and converts each violation into a
// FieldError attributed to objectName. It returns nil when v is valid.
func ValidateStruct(objectName string, v any) []domain.FieldError {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []domain.FieldError{{ObjectName: objectName, Code: "invalid", DefaultMessage: err.Error()}}
	}
	out := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		code, msg := describe(fe)
		out = append(out, domain.FieldError{
			ObjectName:     objectName,
			Field:          fe.Field(),
			RejectedValue:  rejectedValue(fe),
			Code:           code,
			DefaultMessage: msg,
		})
	}
	return out
}

func describe(fe validator.FieldError) (code, message string) {
	switch fe.Tag() {
	case "notblank":
		return "NotEmpty", "must not be empty"
	case "required":
		if fe.Kind() == reflect.String {
			return "NotEmpty", "must not be empty"
		}
		return "NotNull", "must not be null"
	case "min", "gte":
		return "Min", fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "email":
		return "Email", "must be a well-formed email address"
	}
	return fe.Tag(), fmt.Sprintf("failed on the %q rule", fe.Tag())
}

func rejectedValue(fe validator.FieldError) any {
	v := reflect.ValueOf(fe.Value())
	if !v.IsValid() || (v.Kind() == reflect.Pointer && v.IsNil()) {
		return nil
	}
	return fe.Value()
}

// DecodeFields decodes the request body into dest without rejecting unknown fields and
// runs struct validation. Malformed JSON is reported as a single field error.
func DecodeFields(r *http.Request, objectName string, dest any) []domain.FieldError {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return []domain.FieldError{{
			ObjectName:     objectName,
			Field:          jsonErrorField(err),
			Code:           CodeMalformedJSON,
			DefaultMessage: err.Error(),
		}}
	}
	return ValidateStruct(objectName, dest)
}

func jsonErrorField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields)
// and runs struct validation. On decode or validation failure it writes a 400 JSON
// error and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return false
	}
	if errs := ValidateStruct("", dest); len(errs) > 0 {
		msgs := make([]string, 0, len(errs))
		for _, fe := range errs {
			msgs = append(msgs, fe.Field+" "+fe.DefaultMessage)
		}
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, strings.Join(msgs, "; "))
		return false
	}
	return true
}
