// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"mlomp/internal/models"
)

// File is an uploaded media file attached to a create or update call.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// ResourceConfig describes one collection of the content API.
type ResourceConfig struct {
	// Name labels errors and metrics ("news", "projects", ...).
	Name string
	// Path is the collection path relative to the API root ("/news").
	Path string
	// FileField is the multipart field the API expects the file under.
	// Empty means the collection takes no media.
	FileField string
	// AlwaysMultipart sends form bodies even when no file is attached.
	AlwaysMultipart bool
}

// Resource is the typed CRUD surface of one collection. T is the entity
// the API returns and P the payload it accepts.
type Resource[T any, P any] struct {
	c   *Client
	cfg ResourceConfig
}

// NewResource binds a collection to a client.
func NewResource[T any, P any](c *Client, cfg ResourceConfig) *Resource[T, P] {
	cfg.Path = "/" + strings.Trim(cfg.Path, "/")
	return &Resource[T, P]{c: c, cfg: cfg}
}

// Name returns the collection's label.
func (r *Resource[T, P]) Name() string { return r.cfg.Name }

// AcceptsFiles reports whether the collection takes a media upload.
func (r *Resource[T, P]) AcceptsFiles() bool { return r.cfg.FileField != "" }

// List returns every entity of the collection.
func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	var out []T
	err := r.c.do(ctx, request{resource: r.cfg.Name, op: "list", method: http.MethodGet, path: r.cfg.Path}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByCategory returns the entities of one category.
func (r *Resource[T, P]) ListByCategory(ctx context.Context, category string) ([]T, error) {
	var out []T
	path := r.cfg.Path + "/category/" + url.PathEscape(category)
	err := r.c.do(ctx, request{resource: r.cfg.Name, op: "list_by_category", method: http.MethodGet, path: path}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one entity by id.
func (r *Resource[T, P]) Get(ctx context.Context, id models.ID) (T, error) {
	var out T
	err := r.c.do(ctx, request{resource: r.cfg.Name, op: "get", method: http.MethodGet, path: r.itemPath(id)}, &out)
	return out, err
}

// Create posts a new entity. When file is non-nil (or the collection always
// takes forms) the payload is sent as multipart/form-data.
func (r *Resource[T, P]) Create(ctx context.Context, payload P, file *File) (T, error) {
	return r.write(ctx, "create", http.MethodPost, r.cfg.Path, payload, file)
}

// Update replaces the editable fields of an entity.
func (r *Resource[T, P]) Update(ctx context.Context, id models.ID, payload P, file *File) (T, error) {
	return r.write(ctx, "update", http.MethodPut, r.itemPath(id), payload, file)
}

// Delete removes an entity.
func (r *Resource[T, P]) Delete(ctx context.Context, id models.ID) error {
	return r.c.do(ctx, request{resource: r.cfg.Name, op: "delete", method: http.MethodDelete, path: r.itemPath(id)}, nil)
}

func (r *Resource[T, P]) itemPath(id models.ID) string {
	return r.cfg.Path + "/" + url.PathEscape(id.String())
}

func (r *Resource[T, P]) write(ctx context.Context, op, method, path string, payload P, file *File) (T, error) {
	var out T
	req := request{resource: r.cfg.Name, op: op, method: method, path: path}

	if file != nil && r.cfg.FileField == "" {
		return out, &Error{Resource: r.cfg.Name, Op: op, Message: GenericMessage,
			Err: fmt.Errorf("%s does not accept files", r.cfg.Name)}
	}

	var err error
	if file != nil || r.cfg.AlwaysMultipart {
		req.body, req.contentType, err = encodeMultipart(payload, r.cfg.FileField, file)
	} else {
		req.body, err = jsonBody(payload)
	}
	if err != nil {
		return out, &Error{Resource: r.cfg.Name, Op: op, Message: GenericMessage, Err: err}
	}

	err = r.c.do(ctx, req, &out)
	return out, err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart builds a form body from payload. Fields are taken from
// the payload's JSON encoding: strings as-is, numbers and booleans in their
// JSON text, arrays and objects JSON-encoded. A field named like the file
// field is skipped so the file part is the only one under that name.
func encodeMultipart(payload any, fileField string, file *File) (io.Reader, string, error) {
	fields, err := formFields(payload)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == fileField {
			continue
		}
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(fileField), quoteEscaper.Replace(file.Name)))
		ct := file.ContentType
		if ct == "" {
			ct = http.DetectContentType(file.Data)
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func formFields(payload any) (map[string]string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("payload must encode as an object: %w", err)
	}

	out := make(map[string]string, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			out[k] = val
		case json.Number:
			out[k] = val.String()
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			b, err := json.Marshal(val)
			if err != nil {
				return nil, fmt.Errorf("encode field %s: %w", k, err)
			}
			out[k] = string(b)
		}
	}
	return out, nil
}
