// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render provides HTML template rendering for the back-office and
// the public site. Admin pages support full-page and HTMX partial
// rendering, detected via the HX-Request header; public pages render to a
// byte slice so they can be stored in the page cache.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"mlomp/internal/content"
	"mlomp/internal/markdown"
	"mlomp/internal/middleware"
	"mlomp/internal/session"
)

//go:embed templates/admin/*.html templates/public/*.html
var templateFS embed.FS

// PageData holds all data passed to admin templates.
type PageData struct {
	Title     string        // Page title for <title> tag
	Section   string        // Active sidebar section ("dashboard", "news", ...)
	Session   *session.Data // Current user session (nil if unauthenticated)
	CSRFToken string        // CSRF token for forms and HTMX headers
	Data      any           // Page-specific data
	Flashes   []Flash       // Notices shown above the content
}

// Flash represents a one-time notification message displayed to the user.
type Flash struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// PublicData holds the data passed to public templates.
type PublicData struct {
	Title string
	Nav   string // active menu entry
	// Banner is shown when the page falls back to built-in content.
	Banner string
	Data   any
}

// Renderer handles template parsing and execution.
type Renderer struct {
	templates map[string]*template.Template
	public    map[string]*template.Template
	funcMap   template.FuncMap
}

// standaloneTemplates lists admin templates that render as full HTML pages
// without the base layout.
var standaloneTemplates = map[string]bool{
	"login":    true,
	"register": true,
}

// New creates a Renderer by parsing every embedded template. Admin pages
// are paired with base.html and public pages with layout.html. devMode
// flags the environment in the back-office header.
func New(devMode bool) (*Renderer, error) {
	r := &Renderer{
		templates: make(map[string]*template.Template),
		public:    make(map[string]*template.Template),
		funcMap:   funcMap(devMode),
	}
	if err := r.parse("templates/admin", "base.html", standaloneTemplates, r.templates); err != nil {
		return nil, err
	}
	if err := r.parse("templates/public", "layout.html", nil, r.public); err != nil {
		return nil, err
	}
	return r, nil
}

func funcMap(devMode bool) template.FuncMap {
	return template.FuncMap{
		"activeClass": func(current, target string) string {
			if current == target {
				return "bg-emerald-800 text-white"
			}
			return "text-emerald-100 hover:bg-emerald-700 hover:text-white"
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"isDev":             func() bool { return devMode },
		"frDate":            content.FrenchDate,
		"frDay":             content.FrenchDay,
		"newsCategory":      content.NewsCategoryLabel,
		"projectStatus":     content.ProjectStatusLabel,
		"serviceCategory":   content.ServiceCategoryLabel,
		"procedureCategory": content.ProcedureCategoryLabel,
		"statusTone":        content.StatusTone,
		"delayLabel":        content.DelayLabel,
		"excerpt":           content.Excerpt,
		"readTime":          content.ReadTime,
		"markdown":          markdown.Render,
		"flashClass": func(kind string) string {
			switch kind {
			case "success":
				return "bg-green-50 border-green-400 text-green-800"
			case "error":
				return "bg-red-50 border-red-400 text-red-800"
			case "warning":
				return "bg-amber-50 border-amber-400 text-amber-800"
			}
			return "bg-blue-50 border-blue-400 text-blue-800"
		},
		// toneClass turns a statusTone result into badge colours.
		"toneClass": func(tone string) string {
			return "bg-" + tone + "-100 text-" + tone + "-800"
		},
		"add": func(a, b int) int { return a + b },
	}
}

// parse pairs every page of dir with layout, except standalone pages.
func (r *Renderer) parse(dir, layout string, standalone map[string]bool, into map[string]*template.Template) error {
	pages, err := fs.Glob(templateFS, dir+"/*.html")
	if err != nil {
		return fmt.Errorf("glob templates: %w", err)
	}
	for _, page := range pages {
		name := path.Base(page)
		if name == layout {
			continue
		}
		tmplName := strings.TrimSuffix(name, ".html")

		var tmpl *template.Template
		if standalone[tmplName] {
			tmpl, err = template.New(name).Funcs(r.funcMap).ParseFS(templateFS, page)
		} else {
			tmpl, err = template.New(layout).Funcs(r.funcMap).ParseFS(templateFS, dir+"/"+layout, page)
		}
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		into[tmplName] = tmpl
	}
	return nil
}

// Page renders a full admin page or an HTMX partial with status 200.
func (rn *Renderer) Page(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	rn.PageStatus(w, r, http.StatusOK, name, data)
}

// PageStatus renders an admin page with the given status code. For HTMX
// requests only the "content" block is sent.
func (rn *Renderer) PageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data *PageData) {
	tmpl, ok := rn.templates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("template %q not found", name), http.StatusInternalServerError)
		return
	}

	data.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	if data.Session == nil {
		data.Session = session.FromContext(r.Context())
	}

	execName := "base.html"
	switch {
	case isHTMX(r) && !standaloneTemplates[name]:
		execName = "content"
	case standaloneTemplates[name]:
		execName = name + ".html"
	}

	// Render into a buffer so a template error can still become a 500.
	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, execName, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Public renders a public page into memory.
func (rn *Renderer) Public(name string, data *PublicData) ([]byte, error) {
	tmpl, ok := rn.public[name]
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := executeTemplate(&buf, tmpl, "layout.html", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// executeTemplate wraps template execution with error handling.
func executeTemplate(w io.Writer, tmpl *template.Template, name string, data any) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// isHTMX returns true if the request was made by HTMX (has HX-Request header).
func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
