package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"strings"
)

func (tr *TemplateRenderer) funcs() template.FuncMap {
	return template.FuncMap{
		"asset":         assetPath,
		"renderSection": tr.renderSection,
		"friendlyTime":  friendlyTime,
		"roleClass":     roleClass,
	}
}

// renderSection executes the content template of page inside the layout.
func (tr *TemplateRenderer) renderSection(page string, data any) (template.HTML, error) {
	if tr.t == nil {
		return "", errors.New("template not initialized")
	}
	var buf bytes.Buffer
	if err := tr.t.ExecuteTemplate(&buf, ContentTemplateFor(page), data); err != nil {
		return "", err
	}
	// #nosec G203 -- output of html/template, already escaped.
	return template.HTML(buf.String()), nil
}

func assetPath(name string) string {
	return "/static/" + strings.TrimPrefix(name, "/")
}

func roleClass(role string) string {
	switch strings.ToLower(role) {
	case "admin":
		return "badge-danger"
	case "user":
		return "badge-info"
	default:
		return "badge-light"
	}
}
