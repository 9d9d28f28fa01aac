package httpx

import (
	"net/http"
)

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// WithView attaches the server detail view state rendered by the server templates.
func (b *TemplateDataBuilder) WithView(view any) *TemplateDataBuilder {
	b.data["View"] = view
	return b
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
