package domain

import "fmt"

// APIError describe una respuesta de error del backend REST.
// Unwrap devuelve el error de dominio equivalente al código HTTP.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend HTTP %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend HTTP %d", e.Status)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == 401:
		return ErrUnauthorized
	case e.Status == 403:
		return ErrForbidden
	case e.Status == 404:
		return ErrNotFound
	case e.Status == 409:
		return ErrConflict
	case e.Status == 400 || e.Status == 422:
		return ErrInvalidInput
	case e.Status == 503:
		return ErrUnavailable
	default:
		return ErrUpstream
	}
}
