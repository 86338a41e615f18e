package errs

import (
	"fmt"
	"net/http"

	"massg/internal/pkg/logx"
)

// CustomError is the error type returned to HTTP clients.
type CustomError struct {
	// Code is the business error code.
	Code int

	// Message is the client-facing description.
	Message string

	// Status is the HTTP status code sent with the error.
	Status int
}

// Error implements the error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("Error Code %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// NewError returns a copy of the template registered for code.
// Unknown codes resolve to ErrUnknown. For ErrUnknown an optional underlying
// error may be passed as the first detail and is logged, never returned to the client.
func NewError(code int, details ...any) *CustomError {
	tmpl, ok := errorMap[code]
	if !ok {
		logx.Error(
			fmt.Errorf("error code %d is not registered", code),
			"Unknown error code requested",
			"requested_code", code,
		)
		tmpl = errorMap[ErrUnknown]
	}

	customErr := tmpl
	if customErr.Status == 0 {
		customErr.Status = http.StatusBadRequest
	}

	if customErr.Code == ErrUnknown && len(details) > 0 {
		if cause, ok := details[0].(error); ok {
			logx.Error(cause, "Handling ErrUnknown with underlying error")
		}
	}

	return &customErr
}
