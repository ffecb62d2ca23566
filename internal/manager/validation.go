// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package manager

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// RequiredFieldsMessage is shown when more than one field is missing.
const RequiredFieldsMessage = "Veuillez remplir tous les champs obligatoires"

// ValidationError is a rejected form. Fields maps form field names to
// their messages.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError converts an ozzo-validation result into a
// *ValidationError. A nil err yields nil. With a single failing field its
// message becomes the summary; otherwise RequiredFieldsMessage is used.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return &ValidationError{Message: err.Error()}
	}

	fields := make(map[string]string, len(errs))
	var only string
	for k, e := range errs {
		if e == nil {
			continue
		}
		fields[k] = e.Error()
		only = e.Error()
	}
	if len(fields) == 0 {
		return nil
	}
	msg := RequiredFieldsMessage
	if len(fields) == 1 {
		msg = only
	}
	return &ValidationError{Message: msg, Fields: fields}
}

func validationMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return RequiredFieldsMessage
}
