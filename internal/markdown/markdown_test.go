package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{
			name:     "heading and emphasis",
			input:    "# Centre culturel\n\nUn **grand** jour.",
			contains: []string{"<h1", "Centre culturel</h1>", "<strong>grand</strong>"},
		},
		{
			name:     "raw html is not passed through",
			input:    "<script>alert(1)</script>",
			excludes: []string{"<script>"},
		},
		{
			name:     "hard wraps",
			input:    "ligne un\nligne deux",
			contains: []string{"<br"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output %q does not contain %q", got, want)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(got, bad) {
					t.Errorf("output %q contains %q", got, bad)
				}
			}
		})
	}
}

func TestRender(t *testing.T) {
	if got := string(Render("Bonjour")); !strings.Contains(got, "<p>Bonjour</p>") {
		t.Errorf("Render = %q", got)
	}
}
