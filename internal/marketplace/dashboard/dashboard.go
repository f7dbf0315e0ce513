// Package dashboard composes vendor endpoints into the booking dashboard grid.
package dashboard

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"bkap/internal/marketplace/models"
)

const (
	// DefaultHeading is used when no endpoint matches the requested slug.
	DefaultHeading = "Booking"
	// GroupSize is the number of endpoints per dashboard row.
	GroupSize = 2

	middleRowClass  = "bkap-middle-row"
	defaultRowClass = "bkap-row"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Template renders a composed view. *html/template.Template satisfies it.
type Template interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// ResolveHeading returns the name of the endpoint whose slug is target, or
// DefaultHeading when none matches.
func ResolveHeading(endpoints []models.Endpoint, target string) string {
	for _, ep := range endpoints {
		if ep.Slug == target {
			return ep.Name
		}
	}
	return DefaultHeading
}

// GroupEndpoints drops the leading dashboard endpoint and chunks the rest into
// groups of size, preserving order.
func GroupEndpoints(endpoints []models.Endpoint, size int) []models.EndpointGroup {
	if len(endpoints) <= 1 {
		return nil
	}
	if size < 1 {
		size = GroupSize
	}
	rest := endpoints[1:]
	groups := make([]models.EndpointGroup, 0, (len(rest)+size-1)/size)
	for start := 0; start < len(rest); start += size {
		end := min(start+size, len(rest))
		groups = append(groups, append(models.EndpointGroup(nil), rest[start:end]...))
	}
	return groups
}

// Compose builds the template input for one dashboard page view.
func Compose(endpoints []models.Endpoint, target string, vendor models.Vendor) models.View {
	return models.View{
		Groups:     GroupEndpoints(endpoints, GroupSize),
		Vendor:     vendor,
		TargetSlug: target,
		Heading:    ResolveHeading(endpoints, target),
	}
}

// LayoutClass returns the row class for the group at index i.
func LayoutClass(i int) string {
	if i == 1 {
		return middleRowClass
	}
	return defaultRowClass
}

// Renderer writes composed views through a Template.
type Renderer struct {
	tmpl Template
	name string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithTemplate replaces the embedded template. name is the template to execute.
func WithTemplate(t Template, name string) Option {
	return func(r *Renderer) {
		r.tmpl = t
		r.name = name
	}
}

// NewRenderer parses the embedded dashboard template unless one is supplied.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.tmpl == nil {
		t, err := template.New("dashboard").
			Funcs(template.FuncMap{"layoutClass": LayoutClass}).
			ParseFS(templates, "templates/*.tmpl")
		if err != nil {
			return nil, err
		}
		r.tmpl = t
		r.name = "dashboard"
	}
	return r, nil
}

// Render executes the template into w. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, view models.View) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, r.name, view); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
