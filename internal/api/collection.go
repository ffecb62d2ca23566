// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"

	"mlomp/internal/imaging"
	"mlomp/internal/middleware"
	"mlomp/internal/models"
	"mlomp/internal/store"
)

// Media kinds stored on gallery items.
const (
	mediaImage = "image"
	mediaVideo = "video"
)

// Entity describes how one content type maps between payload, entity and
// storage.
type Entity[T any, P any] struct {
	// Name is the collection label, also used as the storage folder.
	Name string
	// FileField is the multipart field holding the media file, if any.
	FileField string
	// AllowVideo accepts video uploads besides images.
	AllowVideo bool
	NotFound   string
	Deleted    string

	Validate func(p P, creating, hasFile bool) (P, error)
	// Apply copies the validated payload onto the entity.
	Apply func(item *T, p P)
	// SetOwner records the authenticated user on new entities. Optional.
	SetOwner func(item *T, userID models.ID)
	// Media returns the current media URL. Optional.
	Media func(item *T) string
	// SetMedia stores an uploaded file's URL, kind and object key.
	SetMedia func(item *T, url, kind, key string)
}

// Collection serves the CRUD endpoints of one entity.
type Collection[T any, P any] struct {
	def   Entity[T, P]
	store Store[T]
	media MediaStore
}

// NewCollection creates a Collection. media may be nil when object storage
// is not configured; uploads are then refused.
func NewCollection[T any, P any](def Entity[T, P], store Store[T], media MediaStore) *Collection[T, P] {
	return &Collection[T, P]{def: def, store: store, media: media}
}

// Mountable is a collection with its type parameters hidden, so a router
// can mount a heterogeneous list.
type Mountable interface {
	Name() string
	Routes(r chi.Router, protect func(http.Handler) http.Handler)
}

// Name returns the collection's path segment.
func (c *Collection[T, P]) Name() string { return c.def.Name }

// Routes mounts the collection on r. Reads are public; writes go through
// protect.
func (c *Collection[T, P]) Routes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Get("/", c.List)
	if _, ok := c.store.(CategoryStore[T]); ok {
		r.Get("/category/{category}", c.ListByCategory)
	}
	r.Get("/{id}", c.Get)

	r.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/", c.Create)
		r.Put("/{id}", c.Update)
		r.Patch("/{id}", c.Update)
		r.Delete("/{id}", c.Delete)
	})
}

// List handles GET /.
func (c *Collection[T, P]) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.store.List(r.Context())
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// ListByCategory handles GET /category/{category}.
func (c *Collection[T, P]) ListByCategory(w http.ResponseWriter, r *http.Request) {
	cs, ok := c.store.(CategoryStore[T])
	if !ok {
		writeMessage(w, http.StatusNotFound, c.def.NotFound)
		return
	}
	items, err := cs.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	writeJSON(w, http.StatusOK, nonNil(items))
}

// Get handles GET /{id}.
func (c *Collection[T, P]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	item, err := c.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create handles POST /.
func (c *Collection[T, P]) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, up, err := bindPayload[P](w, r, c.def.FileField)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	if p, err = c.def.Validate(p, true, up != nil); err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}

	var item T
	c.def.Apply(&item, p)
	if c.def.SetOwner != nil {
		if claims := middleware.ClaimsFromCtx(ctx); claims != nil {
			c.def.SetOwner(&item, claims.UserID)
		}
	}

	uploaded, err := c.attach(ctx, &item, up)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	if err := c.store.Create(ctx, &item); err != nil {
		c.discard(ctx, uploaded)
		writeError(w, r, err, c.def.NotFound)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update handles PUT /{id}. A new file replaces the stored one, whose
// object is then removed.
func (c *Collection[T, P]) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := routeID(r)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	item, err := c.store.Get(ctx, id)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	p, up, err := bindPayload[P](w, r, c.def.FileField)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	if p, err = c.def.Validate(p, false, up != nil); err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}

	previous := c.mediaOf(item)
	c.def.Apply(item, p)
	uploaded, err := c.attach(ctx, item, up)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	if err := c.store.Update(ctx, item); err != nil {
		c.discard(ctx, uploaded)
		writeError(w, r, err, c.def.NotFound)
		return
	}
	if uploaded != "" && previous != uploaded {
		c.discard(ctx, previous)
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /{id}.
func (c *Collection[T, P]) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := routeID(r)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	item, err := c.store.Get(ctx, id)
	if err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	if err := c.store.Delete(ctx, id); err != nil {
		writeError(w, r, err, c.def.NotFound)
		return
	}
	c.discard(ctx, c.mediaOf(item))
	writeMessage(w, http.StatusOK, c.def.Deleted)
}

func (c *Collection[T, P]) mediaOf(item *T) string {
	if c.def.Media == nil {
		return ""
	}
	return c.def.Media(item)
}

// attach uploads up and records it on item. It returns the stored URL, or
// "" when there was no file.
func (c *Collection[T, P]) attach(ctx context.Context, item *T, up *upload) (string, error) {
	if up == nil || c.def.SetMedia == nil {
		return "", nil
	}
	if c.media == nil {
		return "", &httpError{status: http.StatusServiceUnavailable, message: msgNoStorage}
	}

	kind, data, contentType, name, err := c.prepare(up)
	if err != nil {
		return "", err
	}
	url, err := c.media.Upload(ctx, c.def.Name, name, contentType, data)
	if err != nil {
		return "", err
	}
	key, _ := c.media.KeyFromURL(url)
	c.def.SetMedia(item, url, kind, key)
	return url, nil
}

// prepare checks the media type and shrinks images wider than
// imaging.StoredWidth.
func (c *Collection[T, P]) prepare(up *upload) (kind string, data []byte, contentType, name string, err error) {
	switch {
	case imaging.IsImage(up.ContentType):
		img, resized, derr := imaging.Downscale(up.Data, imaging.StoredWidth)
		if errors.Is(derr, imaging.ErrTooLarge) {
			return "", nil, "", "", &httpError{status: http.StatusRequestEntityTooLarge, message: msgImageTooBig, err: derr}
		}
		if derr != nil {
			// Formats without a decoder (svg, heic) are stored as sent.
			return mediaImage, up.Data, up.ContentType, up.Name, nil
		}
		if !resized {
			return mediaImage, up.Data, up.ContentType, up.Name, nil
		}
		jpg := strings.TrimSuffix(up.Name, path.Ext(up.Name)) + ".jpg"
		return mediaImage, img.Data, img.ContentType, jpg, nil
	case c.def.AllowVideo && strings.HasPrefix(up.ContentType, "video/"):
		return mediaVideo, up.Data, up.ContentType, up.Name, nil
	default:
		return "", nil, "", "", &httpError{status: http.StatusUnsupportedMediaType, message: msgBadMediaType}
	}
}

func (c *Collection[T, P]) discard(ctx context.Context, url string) {
	if url == "" || c.media == nil {
		return
	}
	if err := c.media.DeleteURL(context.WithoutCancel(ctx), url); err != nil {
		slog.Warn("delete media failed", "collection", c.def.Name, "url", url, "error", err)
	}
}

// routeID reads the {id} parameter. A malformed id cannot name a row.
func routeID(r *http.Request) (models.ID, error) {
	id, err := models.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		return "", store.ErrNotFound
	}
	return id, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
