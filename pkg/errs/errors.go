package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrBadGateway           = http.StatusBadGateway
	ErrGatewayTimeout       = http.StatusGatewayTimeout
)

var (
	ErrInternalServer      = errors.New("Internal server error")
	ErrClient              = errors.New("Bad request")
	ErrNotLoggedIn         = errors.New("Unauthorized access")
	ErrWrongPassword       = errors.New("Password is incorrect")
	ErrNotFound            = errors.New("Resource not found")
	ErrConfirmationNeeded  = errors.New("Deletion requires explicit confirmation")
	ErrUpstreamUnreachable = errors.New("Failed to reach catalog backend")
	ErrUpstreamTimeout     = errors.New("Catalog backend timed out")
	ErrUpstreamProtocol    = errors.New("Unexpected response from catalog backend")
	ErrUpstreamRejected    = errors.New("Catalog backend rejected the operation")
)

// FieldErrors is a field-keyed validation error map. It never leaves the
// gateway: requests failing validation are rejected before any upstream call.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	return "validation failed"
}

var errorMap = map[error]int{
	ErrInternalServer:      ErrStatusInternalServer,
	ErrClient:              ErrStatusClient,
	ErrNotLoggedIn:         ErrStatusNotLoggedIn,
	ErrWrongPassword:       ErrStatusNotLoggedIn,
	ErrNotFound:            ErrStatusNotFound,
	ErrConfirmationNeeded:  ErrStatusClient,
	ErrUpstreamUnreachable: ErrBadGateway,
	ErrUpstreamTimeout:     ErrGatewayTimeout,
	ErrUpstreamProtocol:    ErrBadGateway,
	ErrUpstreamRejected:    ErrBadGateway,
}

func GetErrorStatusCode(err error) int {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return ErrStatusClient
	}

	for sentinel, statusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return statusCode
		}
	}

	return ErrStatusInternalServer
}
