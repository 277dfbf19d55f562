package server

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-formsubmit/pkg/model"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

const indexTemplate = "templates/index.html.tpl"

// TemplatesFS returns the embedded host page templates. Overrides passed to
// WithTemplates must use the same layout, i.e. templates/index.html.tpl.
func TemplatesFS() fs.FS {
	return templatesFS
}

// PageData is the view model of the host page.
type PageData struct {
	Title    string
	Fields   model.FieldSet
	Comments []Comment
	// WASM names the compiled browser client under the static prefix; the
	// loader script is omitted when empty.
	WASM string
}

// pageRenderer renders the host page from the embedded pongo2 templates.
type pageRenderer struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	labeler   model.Labeler
	statusID  string
	submitID  string
	prefix    string
}

// newPageRenderer looks templates up in overrides first, then falls back to
// the embedded set.
func newPageRenderer(statusID, submitID, staticPrefix string, overrides ...fs.FS) *pageRenderer {
	loaders := make([]pongo2.TemplateLoader, 0, len(overrides)+1)
	for _, files := range overrides {
		if files != nil {
			loaders = append(loaders, pongo2.NewFSLoader(files))
		}
	}
	loaders = append(loaders, pongo2.NewFSLoader(templatesFS))
	return &pageRenderer{
		set:       pongo2.NewSet("formsubmit", loaders...),
		templates: make(map[string]*pongo2.Template),
		statusID:  statusID,
		submitID:  submitID,
		prefix:    staticPrefix,
	}
}

// Render writes the host page to w.
func (r *pageRenderer) Render(w io.Writer, data PageData) error {
	if r == nil || r.set == nil {
		return errors.New("server: page renderer is nil")
	}
	tmpl, err := r.template(indexTemplate)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(r.context(data), &buf); err != nil {
		return fmt.Errorf("server: execute template %q: %w", indexTemplate, err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (r *pageRenderer) context(data PageData) pongo2.Context {
	fields := make([]map[string]any, 0, data.Fields.Len())
	for _, field := range data.Fields.Fields {
		fields = append(fields, map[string]any{
			"name":      field.Name,
			"label":     field.LabelWith(r.labeler),
			"multiline": field.Multiline,
		})
	}
	comments := make([]map[string]any, 0, len(data.Comments))
	for _, comment := range data.Comments {
		comments = append(comments, map[string]any{
			"name":    comment.Name,
			"content": comment.Content,
		})
	}
	formID := data.Fields.Name
	if formID == "" {
		formID = "form"
	}
	return pongo2.Context{
		"title":         data.Title,
		"form_id":       formID,
		"fields":        fields,
		"comments":      comments,
		"status_id":     r.statusID,
		"submit_id":     r.submitID,
		"static_prefix": r.prefix,
		"wasm":          data.WASM,
	}
}

func (r *pageRenderer) template(path string) (*pongo2.Template, error) {
	r.mu.RLock()
	if tmpl, ok := r.templates[path]; ok {
		r.mu.RUnlock()
		return tmpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if tmpl, ok := r.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := r.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("server: load template %q: %w", path, err)
	}
	r.templates[path] = tmpl
	return tmpl, nil
}
