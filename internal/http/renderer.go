package httpx

import (
	"bytes"
	"errors"
	"html"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// TemplateRenderer executes the layout, page, fragment and error templates.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS
	Logger     *slog.Logger
}

// NewTemplateRenderer parses every template under TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	tr := &TemplateRenderer{logger: cfg.Logger}
	if tr.logger == nil {
		tr.logger = slog.Default()
	}
	t, err := template.New("root").Funcs(tr.funcs()).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		tr.logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	tr.t = t
	return tr, nil
}

// FragmentOpts describes one named template render.
type FragmentOpts struct {
	Name   string
	Data   any
	Status int
	// DocTitle, when set, is written as a <title> element ahead of the fragment
	// so htmx updates document.title on a partial swap.
	DocTitle string
}

// Render executes opts.Name into a buffer and writes it only on success, so a
// failing template never leaves a half-written response.
func (tr *TemplateRenderer) Render(w http.ResponseWriter, opts FragmentOpts) error {
	var buf bytes.Buffer
	if opts.DocTitle != "" {
		buf.WriteString("<title>" + html.EscapeString(opts.DocTitle) + "</title>")
	}
	if err := tr.t.ExecuteTemplate(&buf, opts.Name, opts.Data); err != nil {
		tr.logger.Error("template execution failed", slog.String("template", opts.Name), slog.Any("error", err))
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if opts.Status != 0 {
		w.WriteHeader(opts.Status)
	}
	if _, err := buf.WriteTo(w); err != nil {
		tr.logger.Warn("write rendered template", slog.String("template", opts.Name), slog.Any("error", err))
		return err
	}
	return nil
}
