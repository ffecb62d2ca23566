// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"strings"
)

// DecodeRequiredDocs reads the requiredDocs column as stored by the API:
// a JSON-encoded array of strings. Anything else (plain text, a JSON
// scalar, malformed JSON) is treated as a single document named by the
// raw value. An empty value yields no documents.
func DecodeRequiredDocs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var docs []string
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		return []string{raw}
	}
	return docs
}

// EncodeRequiredDocs is the inverse of DecodeRequiredDocs.
func EncodeRequiredDocs(docs []string) string {
	if docs == nil {
		docs = []string{}
	}
	b, _ := json.Marshal(docs)
	return string(b)
}
