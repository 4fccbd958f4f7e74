// Package views renders the HTML pages of the site from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/isdelr/notes-be/internal/auth"
	"github.com/isdelr/notes-be/internal/urls"
	"github.com/rs/zerolog/log"
)

//go:embed templates
var templateFS embed.FS

// Data is the context handed to a template.
type Data map[string]interface{}

// Renderer writes a named page to the response.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, name string, data Data)
}

// TemplateRenderer renders pages parsed from the embedded templates. Each
// page is parsed together with base.html and executed through "base".
type TemplateRenderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"url": urls.Reverse,
}

// NewTemplateRenderer parses every page under templates/notes and templates/users.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	tr := &TemplateRenderer{pages: make(map[string]*template.Template)}

	err := fs.WalkDir(templateFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path == "templates/base.html" || !strings.HasSuffix(path, ".html") {
			return nil
		}
		name := strings.TrimPrefix(path, "templates/")
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", path)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		tr.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Render executes page name into a buffer first, so a template error
// becomes a clean 500 instead of a half-written page.
func (tr *TemplateRenderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, data Data) {
	t, ok := tr.pages[name]
	if !ok {
		log.Error().Str("template", name).Msg("Unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", withUser(r, data)); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// withUser adds the authenticated user's claims under "user".
func withUser(r *http.Request, data Data) Data {
	out := Data{}
	for k, v := range data {
		out[k] = v
	}
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		out["user"] = claims
	}
	return out
}
