package action

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pocketledger/actions-api/internal/domain"
)

// ValidationError reports input that failed validation before any upstream
// call was made. Fields maps each offending field to a message.
type ValidationError struct {
	Fields map[string]string
	err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("input validation failed on %d field(s)", len(e.Fields))
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// newValidationError converts validator errors to a field message map
func newValidationError(err error) *ValidationError {
	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = domain.GetValidationMessage(fe.Tag())
		}
	}
	return &ValidationError{Fields: fields, err: err}
}

// ActionError wraps an execution failure with the endpoint, method and
// moment of the failed call
type ActionError struct {
	Endpoint  string
	Method    string
	Timestamp time.Time
	Err       error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s %s failed at %s: %v",
		e.Method, e.Endpoint, e.Timestamp.Format(time.RFC3339), e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

func newActionError(endpoint, method string, err error) *ActionError {
	return &ActionError{
		Endpoint:  endpoint,
		Method:    method,
		Timestamp: time.Now().UTC(),
		Err:       err,
	}
}
