package models

import (
	"encoding/json"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"7", false},
		{"abc-DEF_12", false},
		{"", true},
		{"../etc", true},
		{"1 2", true},
		{"é", true},
	}
	for _, tt := range tests {
		_, err := ParseID(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseID(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestIDUnmarshalNumberAndString(t *testing.T) {
	var v struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":7,"b":"x9","c":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.A != "7" || v.B != "x9" || v.C != "" {
		t.Errorf("got %+v", v)
	}
}

func TestIDMarshal(t *testing.T) {
	tests := []struct {
		id   ID
		want string
	}{
		{"42", "42"},
		{"abc", `"abc"`},
		{"", "null"},
	}
	for _, tt := range tests {
		b, err := json.Marshal(tt.id)
		if err != nil {
			t.Fatalf("marshal %q: %v", tt.id, err)
		}
		if string(b) != tt.want {
			t.Errorf("Marshal(%q) = %s, want %s", tt.id, b, tt.want)
		}
	}
}

func TestIDScanValue(t *testing.T) {
	var id ID
	if err := id.Scan(int64(12)); err != nil || id != "12" {
		t.Fatalf("Scan(int64) = %q, %v", id, err)
	}
	v, err := id.Value()
	if err != nil || v != int64(12) {
		t.Errorf("Value() = %v, %v; want int64 12", v, err)
	}
	if err := id.Scan(3.5); err == nil {
		t.Error("Scan(float64) should fail")
	}
}
