package auth

import (
	"errors"
	"fmt"
)

// ErrNoToken is returned by TokenStore.Load when nothing has been saved.
var ErrNoToken = errors.New("no token stored")

// ValidationError reports credentials that were rejected before any request was made.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing %v", e.Fields)
}

// AuthenticationError is an application-level rejection: the server answered
// with a non-200 status and a well-formed body.
type AuthenticationError struct {
	Status  int
	Message string
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("login rejected (%d): %s", e.Status, e.Message)
}

// TransportError covers everything between sending the request and having a
// decoded, schema-valid response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	if e == nil || e.Err == nil {
		return "transport error"
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
