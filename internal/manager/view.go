// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package manager

import (
	"context"

	"mlomp/internal/models"
)

// View is a snapshot of a Manager for rendering.
type View[T any, P any] struct {
	Items       []T
	Loading     bool
	Mode        Mode
	EditID      models.ID
	Form        P
	FileName    string
	Preview     string
	FieldErrors map[string]string
	Notices     []Notice
	Messages    Messages
}

// FormOpen reports whether the add or edit form is shown.
func (v View[T, P]) FormOpen() bool { return v.Mode != ModeHidden }

// FieldError returns the validation message for a field, or "".
func (v View[T, P]) FieldError(field string) string { return v.FieldErrors[field] }

// View snapshots the manager. A pending file preview is awaited until ctx
// is done; when it is not ready the stored media URL is shown instead.
func (m *Manager[T, P]) View(ctx context.Context) View[T, P] {
	m.mu.Lock()
	p := m.preview
	m.mu.Unlock()

	previewURL := ""
	if p != nil {
		select {
		case <-p.done:
			previewURL = p.url
		case <-ctx.Done():
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if previewURL == "" {
		previewURL = m.mediaURL
	}
	v := View[T, P]{
		Items:    append([]T(nil), m.items...),
		Loading:  m.loading,
		Mode:     m.mode,
		EditID:   m.editID,
		Form:     m.form,
		Preview:  previewURL,
		Notices:  append([]Notice(nil), m.notices...),
		Messages: m.schema.Messages(),
	}
	if m.file != nil {
		v.FileName = m.file.Name
	}
	if len(m.fieldErrors) > 0 {
		v.FieldErrors = make(map[string]string, len(m.fieldErrors))
		for k, e := range m.fieldErrors {
			v.FieldErrors[k] = e
		}
	}
	return v
}
