package history

import (
	"fmt"
)

// StatusError is a reply from the backend with a non-2xx status. Message is
// the "message" field of the error body when there is one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("information range: status %d: %s", e.Code, e.Message)
}

// NoResponseError means the request was sent but no response arrived, for
// instance because the server could not be reached.
type NoResponseError struct {
	Err error
}

func (e *NoResponseError) Error() string {
	return fmt.Sprintf("information range: no response: %v", e.Err)
}

func (e *NoResponseError) Unwrap() error {
	return e.Err
}

// errorBody is what the backend sends alongside an error status.
type errorBody struct {
	Message string `json:"message"`
}
