// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a persisted entity. The content API has historically sent
// numeric ids for most collections and string ids for the gallery, so ID
// accepts both on the wire and keeps a single representation in Go.
// Numeric ids are written back as JSON numbers.
type ID string

// ParseID validates a raw identifier taken from a URL or form.
func ParseID(s string) (ID, error) {
	if s == "" || len(s) > 64 {
		return "", fmt.Errorf("invalid id %q", s)
	}
	for _, r := range s {
		ok := r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-' || r == '_'
		if !ok {
			return "", fmt.Errorf("invalid id %q", s)
		}
	}
	return ID(s), nil
}

// IDFromInt converts a database key into an ID.
func IDFromInt(n int64) ID {
	return ID(strconv.FormatInt(n, 10))
}

// String returns the raw identifier.
func (id ID) String() string { return string(id) }

// IsZero reports whether the id is unset.
func (id ID) IsZero() bool { return id == "" }

// Int64 returns the numeric form of the id.
func (id ID) Int64() (int64, error) {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id %q is not numeric", string(id))
	}
	return n, nil
}

func (id ID) numeric() bool {
	_, err := id.Int64()
	return err == nil
}

// MarshalJSON writes numeric ids as numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// UnmarshalJSON accepts a JSON number, a JSON string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Scan implements sql.Scanner for BIGSERIAL and text keys.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ""
	case int64:
		*id = IDFromInt(v)
	case string:
		*id = ID(v)
	case []byte:
		*id = ID(string(v))
	default:
		return fmt.Errorf("id: cannot scan %T", src)
	}
	return nil
}

// Value implements driver.Valuer. Numeric ids are sent as integers so they
// compare against BIGINT columns.
func (id ID) Value() (driver.Value, error) {
	if id == "" {
		return nil, nil
	}
	if n, err := id.Int64(); err == nil {
		return n, nil
	}
	return string(id), nil
}
