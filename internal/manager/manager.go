// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package manager implements the back-office editing workflow shared by
// every content collection: list, add form, edit form, delete with
// confirmation, and the notices shown after each action. A Manager is a
// small state machine driven by the admin handlers; the collection-specific
// parts (defaults, validation, form decoding) come from a Schema.
package manager

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"mlomp/internal/client"
	"mlomp/internal/imaging"
	"mlomp/internal/models"
)

// Mode is the form state of a Manager.
type Mode string

const (
	ModeHidden Mode = "hidden"
	ModeAdd    Mode = "add"
	ModeEdit   Mode = "edit"
)

var (
	// ErrDisposed is returned by operations whose results were discarded
	// because the manager was disposed while they ran.
	ErrDisposed = errors.New("manager: disposed")
	// ErrNoForm is returned by Submit when no form is open.
	ErrNoForm = errors.New("manager: no form open")
)

// Service is the content API surface a Manager drives.
// *client.Resource satisfies it.
type Service[T any, P any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id models.ID) (T, error)
	Create(ctx context.Context, payload P, file *client.File) (T, error)
	Update(ctx context.Context, id models.ID, payload P, file *client.File) (T, error)
	Delete(ctx context.Context, id models.ID) error
}

// Messages are the user-facing texts of one collection.
type Messages struct {
	LoadFailed    string
	SaveFailed    string
	DeleteFailed  string
	Created       string
	Updated       string
	Deleted       string
	ConfirmDelete string
}

// Schema supplies the collection-specific behaviour of a Manager.
type Schema[T any, P any] interface {
	// Defaults is the blank add form.
	Defaults() P
	// FromEntity copies an entity's editable fields into a form.
	FromEntity(entity T) P
	ID(entity T) models.ID
	// MediaURL is the entity's stored media, or "".
	MediaURL(entity T) string
	// Decode reads a submitted HTML form.
	Decode(form url.Values) P
	// Validate checks a submitted payload and returns its cleaned form.
	// A failure is a *ValidationError.
	Validate(mode Mode, payload P, hasFile bool) (P, error)
	Messages() Messages
}

// FormReviser is implemented by schemas whose forms have in-place edits
// that re-render the form without submitting it (adding a row, ...).
type FormReviser[P any] interface {
	Revise(payload P, action string) (P, bool)
}

// NoticeKind classifies a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a flash message shown above the list or form.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// preview is an image preview being derived in the background.
type preview struct {
	done chan struct{}
	url  string
}

// Manager is the editing state machine of one collection. Its methods are
// safe for concurrent use.
type Manager[T any, P any] struct {
	svc    Service[T, P]
	schema Schema[T, P]

	mu          sync.Mutex
	items       []T
	loading     bool
	mode        Mode
	editID      models.ID
	form        P
	file        *client.File
	preview     *preview
	mediaURL    string
	fieldErrors map[string]string
	notices     []Notice
	disposed    bool
	loadSeq     uint64
}

// New creates a Manager in the hidden state with an empty list.
func New[T any, P any](svc Service[T, P], schema Schema[T, P]) *Manager[T, P] {
	return &Manager[T, P]{svc: svc, schema: schema, mode: ModeHidden}
}

// Messages returns the collection's texts.
func (m *Manager[T, P]) Messages() Messages { return m.schema.Messages() }

// Decode reads a submitted HTML form through the schema.
func (m *Manager[T, P]) Decode(form url.Values) P { return m.schema.Decode(form) }

// Load fetches the full list. On failure the list is emptied and an error
// notice is added. Results arriving after Dispose, after ctx is done, or
// after a newer Load started are discarded.
func (m *Manager[T, P]) Load(ctx context.Context) error {
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return ErrDisposed
	}
	m.loadSeq++
	seq := m.loadSeq
	m.loading = true
	m.mu.Unlock()

	items, err := m.svc.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.disposed {
		return ErrDisposed
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		m.loading = false
		return ctxErr
	}
	if seq != m.loadSeq {
		return nil
	}
	m.loading = false
	if err != nil {
		m.items = nil
		m.addNotice(NoticeError, m.schema.Messages().LoadFailed)
		return err
	}
	m.items = items
	return nil
}

// OpenAdd opens an empty add form.
func (m *Manager[T, P]) OpenAdd() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetForm()
	m.mode = ModeAdd
	m.form = m.schema.Defaults()
}

// OpenEdit opens the edit form for entity. Its stored media becomes the
// preview until a new file is selected.
func (m *Manager[T, P]) OpenEdit(entity T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetForm()
	m.mode = ModeEdit
	m.editID = m.schema.ID(entity)
	m.form = m.schema.FromEntity(entity)
	m.mediaURL = m.schema.MediaURL(entity)
}

// OpenEditByID fetches the entity and opens its edit form.
func (m *Manager[T, P]) OpenEditByID(ctx context.Context, id models.ID) error {
	entity, err := m.svc.Get(ctx, id)
	if err != nil {
		m.mu.Lock()
		m.addNotice(NoticeError, client.Message(err))
		m.mu.Unlock()
		return err
	}
	m.OpenEdit(entity)
	return nil
}

// Close hides the form and forgets its contents.
func (m *Manager[T, P]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetForm()
}

// SelectFile attaches a media file to the open form. An image preview is
// derived concurrently and awaited only by View.
func (m *Manager[T, P]) SelectFile(f *client.File) {
	if f == nil {
		return
	}
	p := &preview{done: make(chan struct{})}
	go func(data []byte, contentType string) {
		defer close(p.done)
		p.url = imaging.PreviewDataURL(data, contentType)
	}(f.Data, f.ContentType)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.file = f
	m.preview = p
}

// ClearFile detaches the selected file.
func (m *Manager[T, P]) ClearFile() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.file = nil
	m.preview = nil
}

// Revise applies an in-form action (see FormReviser) to payload and keeps
// the result as the open form. It reports whether the action was handled.
func (m *Manager[T, P]) Revise(payload P, action string) bool {
	r, ok := m.schema.(FormReviser[P])
	if !ok || action == "" {
		return false
	}
	revised, handled := r.Revise(payload, action)
	if !handled {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.form = revised
	return true
}

// Submit validates payload and creates or updates the entity depending on
// the mode. Validation failures never reach the service. On success the
// list is reloaded, the form closed and a success notice added; on a
// service failure the form stays open with its contents and an error
// notice is added.
func (m *Manager[T, P]) Submit(ctx context.Context, payload P) error {
	m.mu.Lock()
	mode, id, file := m.mode, m.editID, m.file
	if m.disposed {
		m.mu.Unlock()
		return ErrDisposed
	}
	if mode == ModeHidden {
		m.mu.Unlock()
		return ErrNoForm
	}
	m.form = payload
	m.fieldErrors = nil

	cleaned, err := m.schema.Validate(mode, payload, file != nil || (mode == ModeEdit && m.mediaURL != ""))
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			m.fieldErrors = ve.Fields
		}
		m.addNotice(NoticeError, validationMessage(err))
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	msgs := m.schema.Messages()
	if mode == ModeAdd {
		_, err = m.svc.Create(ctx, cleaned, file)
	} else {
		_, err = m.svc.Update(ctx, id, cleaned, file)
	}
	if err != nil {
		m.mu.Lock()
		m.addNotice(NoticeError, failureMessage(msgs.SaveFailed, err))
		m.mu.Unlock()
		return err
	}

	_ = m.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetForm()
	if mode == ModeAdd {
		m.addNotice(NoticeSuccess, msgs.Created)
	} else {
		m.addNotice(NoticeSuccess, msgs.Updated)
	}
	return nil
}

// Delete removes the entity with the given id once the user confirmed.
// An unconfirmed delete does nothing.
func (m *Manager[T, P]) Delete(ctx context.Context, id models.ID, confirmed bool) error {
	if !confirmed {
		return nil
	}
	m.mu.Lock()
	if m.disposed {
		m.mu.Unlock()
		return ErrDisposed
	}
	m.mu.Unlock()

	msgs := m.schema.Messages()
	if err := m.svc.Delete(ctx, id); err != nil {
		m.mu.Lock()
		m.addNotice(NoticeError, failureMessage(msgs.DeleteFailed, err))
		m.mu.Unlock()
		return err
	}

	_ = m.Load(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.addNotice(NoticeSuccess, msgs.Deleted)
	return nil
}

// Dispose marks the manager as gone; in-flight loads are discarded.
func (m *Manager[T, P]) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disposed = true
}

// AddNotice records a notice produced outside the manager's own actions.
func (m *Manager[T, P]) AddNotice(kind NoticeKind, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addNotice(kind, message)
}

func (m *Manager[T, P]) addNotice(kind NoticeKind, message string) {
	if message == "" {
		return
	}
	m.notices = append(m.notices, Notice{Kind: kind, Message: message})
}

// resetForm returns to the hidden state. Callers hold m.mu.
func (m *Manager[T, P]) resetForm() {
	var zero P
	m.mode = ModeHidden
	m.editID = ""
	m.form = zero
	m.file = nil
	m.preview = nil
	m.mediaURL = ""
	m.fieldErrors = nil
}

// failureMessage prefers the API's explanation over the generic text.
func failureMessage(fallback string, err error) string {
	msg := client.Message(err)
	if msg == client.GenericMessage && fallback != "" {
		return fallback
	}
	return msg
}
