package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound is returned (wrapped) when an article id does not exist.
var ErrNotFound = errors.New("article not found")

// NetworkError reports that the request never produced a response:
// connection failures, DNS errors and timeouts.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Err == nil {
		return "network error"
	}
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a non-success response or an undecodable body.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%d", e.StatusCode)
	}
	return "server error"
}

// Unwrap maps a 404 onto ErrNotFound so errors.Is works for by-id lookups.
func (e *ServerError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}
