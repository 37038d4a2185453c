package collector

import (
	"errors"
	"fmt"
	"net/http"
)

// UnreachableError means the request never got an HTTP response.
type UnreachableError struct {
	BaseURL string
	Err     error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("Unable to reach prediction service at %s. Check that the API server is running and no network or proxy blocks exist.", e.BaseURL)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// StatusError is a non-2xx response. Message is the body's "error" field
// when the body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, http.StatusText(e.Code))
}

// AppError is a 2xx response carrying success=false.
type AppError struct {
	Resource string
	Message  string
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "Failed to fetch " + e.Resource
}

// Kind classifies an error for logs and the history recorder.
func Kind(err error) string {
	var unreachable *UnreachableError
	var status *StatusError
	var app *AppError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &unreachable):
		return "unreachable"
	case errors.As(err, &status):
		return "status"
	case errors.As(err, &app):
		return "application"
	default:
		return "decode"
	}
}

// UserMessage is the text shown on the dashboard error line.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var unreachable *UnreachableError
	var status *StatusError
	var app *AppError
	switch {
	case errors.As(err, &unreachable):
		return unreachable.Error()
	case errors.As(err, &status):
		return status.Error()
	case errors.As(err, &app):
		return app.Error()
	}
	return "Unable to retrieve stock data"
}
