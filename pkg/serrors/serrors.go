package serrors

import "fmt"

// BaseError is a coded error safe to surface to API clients.
type BaseError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	LocaleKey string `json:"-"`
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code, message, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

// FieldRequiredError reports an empty required field on a request or row.
type FieldRequiredError struct {
	BaseError
	Field string `json:"field"`
}

func NewFieldRequiredError(field, localeKey string) *FieldRequiredError {
	return &FieldRequiredError{
		BaseError: BaseError{
			Code:      "FIELD_REQUIRED",
			Message:   fmt.Sprintf("field %q is required", field),
			LocaleKey: localeKey,
		},
		Field: field,
	}
}
