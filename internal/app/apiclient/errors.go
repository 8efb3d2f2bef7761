package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/FACorreiaa/hmhy-portal/internal/app/models"
)

var (
	// ErrSessionExpired means the token could not be refreshed and the session
	// has been torn down. Callers send the browser back to the landing page.
	ErrSessionExpired = errors.New("session expired")
	// ErrEmptyToken is returned when the refresh endpoint answers 2xx without a token.
	ErrEmptyToken = errors.New("refresh response carried no token")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    LocalizedMessage
	Body       []byte
}

func (e *APIError) Error() string {
	msg := e.Message.Fallback()
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, msg)
}

// Unwrap lets callers match API failures against the portal's sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return models.ErrUnauthenticated
	case e.StatusCode == http.StatusForbidden:
		return models.ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return models.ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return models.ErrConflict
	case e.StatusCode == http.StatusUnprocessableEntity:
		return models.ErrValidation
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return models.ErrBadRequest
	}
	return nil
}

func newAPIError(resp *Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: resp.Body}
	var env Envelope[json.RawMessage]
	if err := resp.decode(&env); err == nil {
		apiErr.Message = env.Message
	}
	return apiErr
}

// StatusCode reports the backend status behind err, or 0 when err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
