package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bbernstein/lunartide/internal/location"
)

// InvalidParameterError reports a missing or malformed request parameter
type InvalidParameterError struct {
	Parameter string
	Message   string
	Err       error
}

func (e *InvalidParameterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid parameter %s: %s: %v", e.Parameter, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid parameter %s: %s", e.Parameter, e.Message)
}

func (e *InvalidParameterError) Unwrap() error {
	return e.Err
}

func NewInvalidParameterError(parameter, message string, err error) *InvalidParameterError {
	return &InvalidParameterError{
		Parameter: parameter,
		Message:   message,
		Err:       err,
	}
}

// InvalidCoordinatesError wraps models.ErrInvalidLatitude or models.ErrInvalidLongitude
type InvalidCoordinatesError struct {
	Err error
}

func (e *InvalidCoordinatesError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Invalid coordinates: %v", e.Err)
	}
	return "Invalid coordinates"
}

func (e *InvalidCoordinatesError) Unwrap() error {
	return e.Err
}

// StatusCode maps an error to the HTTP status it is reported with
func StatusCode(err error) int {
	var paramErr *InvalidParameterError
	var coordErr *InvalidCoordinatesError

	switch {
	case errors.As(err, &paramErr), errors.As(err, &coordErr):
		return http.StatusBadRequest
	case errors.Is(err, location.ErrLocationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
