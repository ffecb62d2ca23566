// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mlomp/internal/client"
	"mlomp/internal/manager"
	"mlomp/internal/models"
	"mlomp/internal/render"
)

// maxFormMemory bounds the in-memory part of multipart admin forms.
const maxFormMemory = 32 << 20

// actionField carries in-form edits such as adding a document row.
const actionField = "_action"

// Field describes one input of an admin form.
type Field struct {
	Name        string
	Label       string
	Type        string // text, textarea, markdown, select, number, date, docs
	Value       string
	Values      []string // docs rows
	Options     []Option
	Required    bool
	Placeholder string
	Error       string
}

// Option is a <select> choice.
type Option struct {
	Value string
	Label string
}

// Row is one line of a collection table.
type Row struct {
	ID    models.ID
	Thumb string
	Cells []string
}

// CollectionView is the data of the collection template: the table and,
// when open, the add or edit form.
type CollectionView struct {
	Key      string
	Title    string
	Singular string
	Base     string
	Columns  []string
	Rows     []Row
	Loading  bool

	FormOpen   bool
	Editing    bool
	FormAction string
	Fields     []Field
	FileField  string
	FileAccept string
	FileName   string
	Preview    string
}

// ConfirmView is the data of the delete confirmation page.
type ConfirmView struct {
	Base    string
	Label   string
	Message string
	Action  string
}

// section is the back-office screen of one collection.
type section[T any, P any] struct {
	admin    *Admin
	key      string
	title    string
	singular string
	service  manager.Service[T, P]
	schema   manager.Schema[T, P]

	fileField  string
	fileAccept string
	columns    []string
	row        func(T) Row
	fields     func(P) []Field
	label      func(T) string
	// pages are the public routes showing the collection.
	pages []string
}

// mountable hides the type parameters of a section from the router.
type mountable interface {
	base() string
	mount(r chi.Router)
}

func (s *section[T, P]) base() string { return "/" + s.key }

func (s *section[T, P]) path() string { return "/admin/" + s.key }

func (s *section[T, P]) mount(r chi.Router) {
	r.Get("/", s.list)
	r.Post("/", s.create)
	r.Get("/new", s.newForm)
	r.Get("/{id}/edit", s.edit)
	r.Post("/{id}", s.update)
	r.Get("/{id}/delete", s.confirmDelete)
	r.Post("/{id}/delete", s.delete)
}

func (s *section[T, P]) manager() *manager.Manager[T, P] {
	return manager.New(s.service, s.schema)
}

func (s *section[T, P]) load(r *http.Request, m *manager.Manager[T, P]) {
	if err := m.Load(r.Context()); err != nil && !errors.Is(err, manager.ErrDisposed) {
		slog.Error("admin list failed", "collection", s.key, "error", err)
	}
}

func (s *section[T, P]) list(w http.ResponseWriter, r *http.Request) {
	m := s.manager()
	defer m.Dispose()
	s.load(r, m)
	s.render(w, r, http.StatusOK, m)
}

func (s *section[T, P]) newForm(w http.ResponseWriter, r *http.Request) {
	m := s.manager()
	defer m.Dispose()
	s.load(r, m)
	m.OpenAdd()
	s.render(w, r, http.StatusOK, m)
}

func (s *section[T, P]) create(w http.ResponseWriter, r *http.Request) {
	m := s.manager()
	defer m.Dispose()
	m.OpenAdd()
	s.submit(w, r, m)
}

func (s *section[T, P]) edit(w http.ResponseWriter, r *http.Request) {
	id, ok := s.routeID(w, r)
	if !ok {
		return
	}
	m := s.manager()
	defer m.Dispose()
	s.load(r, m)
	if err := m.OpenEditByID(r.Context(), id); err != nil {
		slog.Warn("admin edit load failed", "collection", s.key, "id", id, "error", err)
	}
	s.render(w, r, http.StatusOK, m)
}

func (s *section[T, P]) update(w http.ResponseWriter, r *http.Request) {
	id, ok := s.routeID(w, r)
	if !ok {
		return
	}
	m := s.manager()
	defer m.Dispose()
	if err := m.OpenEditByID(r.Context(), id); err != nil {
		slog.Warn("admin edit load failed", "collection", s.key, "id", id, "error", err)
		s.load(r, m)
		s.render(w, r, http.StatusOK, m)
		return
	}
	s.submit(w, r, m)
}

// submit handles a posted add or edit form. In-form actions re-render the
// form; otherwise the manager validates and saves.
func (s *section[T, P]) submit(w http.ResponseWriter, r *http.Request, m *manager.Manager[T, P]) {
	if err := parseForm(r); err != nil {
		http.Error(w, "Formulaire invalide", http.StatusBadRequest)
		return
	}
	payload := m.Decode(r.PostForm)
	if f, err := formFile(r, s.fileField); err != nil {
		slog.Warn("admin upload read failed", "collection", s.key, "error", err)
	} else {
		m.SelectFile(f)
	}

	if m.Revise(payload, r.PostForm.Get(actionField)) {
		s.load(r, m)
		s.render(w, r, http.StatusOK, m)
		return
	}

	status := http.StatusOK
	err := m.Submit(r.Context(), payload)
	switch {
	case err == nil:
		s.admin.invalidate(r.Context(), s.pages)
	default:
		var ve *manager.ValidationError
		if errors.As(err, &ve) {
			status = http.StatusUnprocessableEntity
		} else {
			slog.Error("admin save failed", "collection", s.key, "error", err)
		}
		s.load(r, m)
	}
	s.render(w, r, status, m)
}

func (s *section[T, P]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.routeID(w, r)
	if !ok {
		return
	}
	item, err := s.service.Get(r.Context(), id)
	if err != nil {
		slog.Warn("admin delete lookup failed", "collection", s.key, "id", id, "error", err)
		m := s.manager()
		defer m.Dispose()
		m.AddNotice(manager.NoticeError, client.Message(err))
		s.load(r, m)
		s.render(w, r, http.StatusOK, m)
		return
	}
	s.admin.renderer.Page(w, r, "confirm_delete", &render.PageData{
		Title:   s.title,
		Section: s.key,
		Data: ConfirmView{
			Base:    s.path(),
			Label:   s.label(item),
			Message: s.schema.Messages().ConfirmDelete,
			Action:  s.path() + "/" + id.String() + "/delete",
		},
	})
}

// delete removes an item once the confirmation form was accepted.
// Without confirmation nothing is deleted.
func (s *section[T, P]) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.routeID(w, r)
	if !ok {
		return
	}
	confirmed := r.PostFormValue("confirm") == "yes"
	if !confirmed {
		http.Redirect(w, r, s.path(), http.StatusSeeOther)
		return
	}

	m := s.manager()
	defer m.Dispose()
	if err := m.Delete(r.Context(), id, confirmed); err != nil {
		slog.Error("admin delete failed", "collection", s.key, "id", id, "error", err)
		s.load(r, m)
	} else {
		s.admin.invalidate(r.Context(), s.pages)
	}
	s.render(w, r, http.StatusOK, m)
}

func (s *section[T, P]) routeID(w http.ResponseWriter, r *http.Request) (models.ID, bool) {
	id, err := models.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return "", false
	}
	return id, true
}

// render snapshots the manager into the collection template.
func (s *section[T, P]) render(w http.ResponseWriter, r *http.Request, status int, m *manager.Manager[T, P]) {
	v := m.View(r.Context())

	cv := CollectionView{
		Key:        s.key,
		Title:      s.title,
		Singular:   s.singular,
		Base:       s.path(),
		Columns:    s.columns,
		Loading:    v.Loading,
		FormOpen:   v.FormOpen(),
		Editing:    v.Mode == manager.ModeEdit,
		FileField:  s.fileField,
		FileAccept: s.fileAccept,
		FileName:   v.FileName,
		Preview:    v.Preview,
	}
	for _, item := range v.Items {
		cv.Rows = append(cv.Rows, s.row(item))
	}
	if cv.FormOpen {
		cv.FormAction = s.path()
		if cv.Editing {
			cv.FormAction += "/" + v.EditID.String()
		}
		cv.Fields = s.fields(v.Form)
		for i := range cv.Fields {
			cv.Fields[i].Error = v.FieldError(cv.Fields[i].Name)
		}
	}

	flashes := make([]render.Flash, 0, len(v.Notices))
	for _, n := range v.Notices {
		flashes = append(flashes, render.Flash{Type: string(n.Kind), Message: n.Message})
	}
	if fe := v.FieldError(s.fileField); fe != "" {
		flashes = append(flashes, render.Flash{Type: "error", Message: fe})
	}

	s.admin.renderer.PageStatus(w, r, status, "collection", &render.PageData{
		Title:   s.title,
		Section: s.key,
		Data:    cv,
		Flashes: flashes,
	})
}

// parseForm reads urlencoded and multipart bodies alike.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

// formFile returns the uploaded file under field, or nil when none was
// chosen.
func formFile(r *http.Request, field string) (*client.File, error) {
	if field == "" || r.MultipartForm == nil {
		return nil, nil
	}
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	ct := header.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return &client.File{Name: header.Filename, ContentType: ct, Data: data}, nil
}
