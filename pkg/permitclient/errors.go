package permitclient

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidConfig is returned by NewClient for an unusable configuration
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrNetworkError is returned when the API could not be reached
	ErrNetworkError = errors.New("network error")

	// ErrInvalidRequest is returned for 400 responses
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized is returned for 401 responses
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned for 404 responses
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for 409 responses
	ErrConflict = errors.New("conflict")

	// ErrServer is returned for every other failed response
	ErrServer = errors.New("server error")
)

// APIError is a failed response. Error returns the server's message as-is.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Errors     []string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrInvalidRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	default:
		return ErrServer
	}
}

// errorBody covers both error shapes the API returns: {error: CODE, message}
// and the bare {error: message}.
type errorBody struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Errors  []string          `json:"errors"`
	Fields  map[string]string `json:"fields"`
}

func newAPIError(status int, body errorBody) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Code:       body.Error,
		Message:    body.Message,
		Errors:     body.Errors,
		Fields:     body.Fields,
	}
	if apiErr.Message == "" {
		apiErr.Message = body.Error
		apiErr.Code = ""
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(status)
	}
	return apiErr
}
