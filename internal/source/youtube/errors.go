package youtube

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrQuotaExceeded matches platform responses that deny access,
	// which is how quota exhaustion surfaces.
	ErrQuotaExceeded = errors.New("youtube api quota exceeded or access denied")
	// ErrTranscriptUnavailable wraps every failure of transcript extraction.
	// A successful extraction with zero captions is not an error.
	ErrTranscriptUnavailable = errors.New("transcript unavailable")
	// ErrMalformedResponse is returned when a response lacks fields the
	// client cannot do without.
	ErrMalformedResponse = errors.New("malformed youtube api response")
)

// APIError is a non-2xx response from the YouTube Data API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == http.StatusForbidden {
		return fmt.Sprintf("youtube api quota exceeded or access denied: %s", e.Message)
	}
	return fmt.Sprintf("youtube api error (%d): %s", e.StatusCode, e.Message)
}

// Is lets errors.Is(err, ErrQuotaExceeded) match 403 responses.
func (e *APIError) Is(target error) bool {
	return target == ErrQuotaExceeded && e.StatusCode == http.StatusForbidden
}
