// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 50 << 20
	maxFormMemory = 8 << 20
)

// upload is a file received in a multipart body.
type upload struct {
	Name        string
	ContentType string
	Data        []byte
}

// bindPayload decodes the request body into a P. JSON bodies decode by
// the payload's json tags; form bodies (urlencoded or multipart) are bound
// field by field on the same tags, with numbers parsed from text and
// arrays accepted either JSON-encoded or as repeated fields. A multipart
// file under fileField is returned separately.
func bindPayload[P any](w http.ResponseWriter, r *http.Request, fileField string) (P, *upload, error) {
	var p P
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return p, nil, bodyError(err)
		}
		if err := decodeForm(r.MultipartForm.Value, fileField, &p); err != nil {
			return p, nil, err
		}
		up, err := formFile(r, fileField)
		return p, up, err

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
		if err := r.ParseForm(); err != nil {
			return p, nil, bodyError(err)
		}
		return p, nil, decodeForm(r.PostForm, fileField, &p)

	default:
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
		if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			return p, nil, bodyError(err)
		}
		return p, nil, nil
	}
}

func bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &httpError{status: http.StatusRequestEntityTooLarge, message: msgTooLarge, err: err}
	}
	return badRequest(msgBadRequest, err)
}

func decodeForm(values url.Values, skip string, out any) error {
	input := make(map[string]any, len(values))
	for k, vs := range values {
		if k == skip || len(vs) == 0 {
			continue
		}
		if len(vs) == 1 {
			input[k] = vs[0]
		} else {
			input[k] = vs
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       jsonArrayHook,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("form decoder: %w", err)
	}
	if err := dec.Decode(input); err != nil {
		return badRequest(msgBadRequest, err)
	}
	return nil
}

// jsonArrayHook expands a JSON-encoded array sent as one form value.
func jsonArrayHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if !strings.HasPrefix(s, "[") {
		return data, nil
	}
	var arr []any
	if err := json.Unmarshal([]byte(s), &arr); err != nil {
		return data, nil
	}
	return arr, nil
}

func formFile(r *http.Request, field string) (*upload, error) {
	if field == "" {
		return nil, nil
	}
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, badRequest(msgBadRequest, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, bodyError(err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	ct := header.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return &upload{Name: header.Filename, ContentType: ct, Data: data}, nil
}
