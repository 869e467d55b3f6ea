// Package server provides the HTTP API for the content-calendar generator.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/content-calendar/internal/strategy"
)

// TransportFailureMessage is shown to clients when the generation service call fails.
// The underlying cause is logged, never returned.
const TransportFailureMessage = "An error occurred while generating the content strategy. Please check your API key and try again."

// TimeoutMessage is shown to clients when the generation call exceeds its deadline.
const TimeoutMessage = "The content strategy took too long to generate. Please try again."

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnsupportedFormat indicates an unknown render format was requested
type ErrUnsupportedFormat struct {
	Format string
}

func (e *ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("unsupported format %q (want markdown, html, csv or json)", e.Format)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		formatErr     *ErrUnsupportedFormat
		generationErr *strategy.GenerationError
		transportErr  *strategy.TransportError
	)

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr), errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &generationErr), errors.As(err, &transportErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message that may be shown to a client for err.
// Model output and provider errors stay in the logs.
func PublicMessage(err error) string {
	var (
		validationErr *ErrValidation
		formatErr     *ErrUnsupportedFormat
		generationErr *strategy.GenerationError
		transportErr  *strategy.TransportError
	)

	switch {
	case err == nil:
		return "internal server error"
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &formatErr):
		return formatErr.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return TimeoutMessage
	case errors.As(err, &generationErr):
		return generationErr.Message
	case errors.As(err, &transportErr):
		return TransportFailureMessage
	default:
		return "internal server error"
	}
}
