package llm

import (
	"fmt"
	"strings"
)

// ModelNotFoundError is returned when a requested model identifier is not in
// the relevant catalog. Raised before any network call.
type ModelNotFoundError struct {
	Model     string
	Available []string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("invalid model %q, available models: %s",
		e.Model, strings.Join(e.Available, ", "))
}

// ImageUnavailableError is returned when the image for a vision request
// could not be read. Raised before any network call.
type ImageUnavailableError struct {
	Path string
	Err  error
}

func (e *ImageUnavailableError) Error() string {
	return fmt.Sprintf("image file not available: %s: %v", e.Path, e.Err)
}

func (e *ImageUnavailableError) Unwrap() error {
	return e.Err
}

// AuthenticationError is returned when the endpoint rejects the session
// cookie with a 401.
type AuthenticationError struct {
	Status int
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("invalid authentication credentials (status %d)", e.Status)
}

// RequestError covers every other transport failure: network errors,
// non-2xx statuses and torn response bodies. Status is zero when the
// request never produced a response; Body carries the response text when
// one was available.
type RequestError struct {
	Status int
	Body   string
	Err    error
}

func (e *RequestError) Error() string {
	if e.Status != 0 {
		if e.Body != "" {
			return fmt.Sprintf("request failed: status %d, body: %s", e.Status, e.Body)
		}
		return fmt.Sprintf("request failed: status %d", e.Status)
	}
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}
