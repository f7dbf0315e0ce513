// Package registry provides the ordered catalog of vendor dashboard endpoints.
package registry

import (
	"embed"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"bkap/internal/marketplace/models"
)

//go:embed catalog/endpoints.yaml
var embedded embed.FS

type catalogFile struct {
	Endpoints []models.Endpoint `yaml:"endpoints"`
}

// Registry is an immutable, ordered endpoint list. The dashboard endpoint is
// always first.
type Registry struct {
	endpoints []models.Endpoint
	bySlug    map[string]int
}

// Default loads the catalog shipped with the binary.
func Default(baseURL string) (*Registry, error) {
	f, err := embedded.Open("catalog/endpoints.yaml")
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, baseURL)
}

// FromFile loads a catalog from path, falling back to the embedded catalog
// when path is empty.
func FromFile(path, baseURL string) (*Registry, error) {
	if path == "" {
		return Default(baseURL)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open endpoint catalog: %w", err)
	}
	defer f.Close()
	return Load(f, baseURL)
}

// Load parses a YAML catalog and derives endpoint URLs from baseURL.
func Load(r io.Reader, baseURL string) (*Registry, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode endpoint catalog: %w", err)
	}
	return New(baseURL, file.Endpoints)
}

// New validates endpoints and builds their URLs. Endpoints that already carry
// a URL keep it.
func New(baseURL string, endpoints []models.Endpoint) (*Registry, error) {
	if len(endpoints) == 0 || endpoints[0].Slug != models.DashboardSlug {
		return nil, fmt.Errorf("endpoint catalog must start with %q", models.DashboardSlug)
	}
	base := strings.TrimRight(baseURL, "/")
	reg := &Registry{
		endpoints: make([]models.Endpoint, 0, len(endpoints)),
		bySlug:    make(map[string]int, len(endpoints)),
	}
	for i, ep := range endpoints {
		if ep.Slug == "" || ep.Name == "" {
			return nil, fmt.Errorf("endpoint %d: slug and name are required", i)
		}
		if _, dup := reg.bySlug[ep.Slug]; dup {
			return nil, fmt.Errorf("endpoint %q declared twice", ep.Slug)
		}
		if ep.URL == "" {
			ep.URL = URLFor(base, ep.Slug)
		}
		reg.bySlug[ep.Slug] = i
		reg.endpoints = append(reg.endpoints, ep)
	}
	return reg, nil
}

// URLFor returns the dashboard URL of slug. The dashboard itself maps to base.
func URLFor(base, slug string) string {
	if slug == models.DashboardSlug {
		return base
	}
	return base + "/" + slug
}

// Endpoints returns a copy of the ordered endpoint list.
func (r *Registry) Endpoints() []models.Endpoint {
	return append([]models.Endpoint(nil), r.endpoints...)
}

// Lookup returns the endpoint registered under slug.
func (r *Registry) Lookup(slug string) (models.Endpoint, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return models.Endpoint{}, false
	}
	return r.endpoints[i], true
}
