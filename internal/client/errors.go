// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"errors"
	"fmt"
	"net/http"
)

// GenericMessage is shown when the API gave no usable explanation.
const GenericMessage = "Une erreur inattendue est survenue"

// ErrNotFound matches (via errors.Is) any *Error with a 404 status.
var ErrNotFound = errors.New("not found")

// Error is returned by every failed API call. Status is 0 when the request
// never produced an HTTP response.
type Error struct {
	Resource string
	Op       string
	Status   int
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s %s: %s: %v", e.Resource, e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s %s: %s", e.Resource, e.Op, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Resource, e.Op, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether the error is the not-found flavour.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Message returns the user-facing message carried by err, or GenericMessage
// when err is not an API error.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return GenericMessage
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
