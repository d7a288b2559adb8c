package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrMissingSelector indicates a request with neither a clinic id nor the
// aggregate flag, so no aggregation mode can be selected.
type ErrMissingSelector struct{}

func (e *ErrMissingSelector) Error() string {
	return "either clinic_id or aggregate=true is required"
}

// ErrInvalidStatuses indicates an unusable statuses override.
type ErrInvalidStatuses struct {
	Raw string
}

func (e *ErrInvalidStatuses) Error() string {
	return fmt.Sprintf("invalid statuses override: %q", e.Raw)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnauthorized indicates a missing or invalid bearer credential.
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "invalid credential"
}

// ErrForbidden indicates a valid credential for the wrong clinic.
type ErrForbidden struct {
	ClinicID string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("not permitted to read clinic %s", e.ClinicID)
}

// ErrStoreUnavailable wraps a full store request failure. Partial
// unprocessed-key responses never produce this; those are retried once and
// then degrade to absent attachments.
type ErrStoreUnavailable struct {
	Err error
}

func (e *ErrStoreUnavailable) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *ErrStoreUnavailable) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var missing *ErrMissingSelector
	var statuses *ErrInvalidStatuses
	var validation *ErrValidation
	var unauthorized *ErrUnauthorized
	var forbidden *ErrForbidden
	var store *ErrStoreUnavailable

	switch {
	case errors.As(err, &missing), errors.As(err, &statuses), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized
	case errors.As(err, &forbidden):
		return http.StatusForbidden
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout
	case errors.As(err, &store):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
