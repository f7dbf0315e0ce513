package testutil

import (
	"fmt"

	"bkap/internal/marketplace/models"
)

// TestLicenseKey is a well-formed 32 character license key.
const TestLicenseKey = "0123456789abcdef0123456789abcdef"

// EndpointsBuilder provides a fluent interface for building vendor endpoint lists.
// The dashboard endpoint is always first.
type EndpointsBuilder struct {
	baseURL   string
	endpoints []models.Endpoint
}

// NewEndpointsBuilder starts a list holding only the dashboard endpoint.
func NewEndpointsBuilder() *EndpointsBuilder {
	b := &EndpointsBuilder{baseURL: "/vendor/dashboard"}
	b.endpoints = []models.Endpoint{{
		Slug: "dashboard",
		Name: "Dashboard",
		URL:  b.baseURL,
		Icon: "dashicons-dashboard",
	}}
	return b
}

// With appends an endpoint whose URL is derived from slug.
func (b *EndpointsBuilder) With(slug, name string) *EndpointsBuilder {
	b.endpoints = append(b.endpoints, models.Endpoint{
		Slug: slug,
		Name: name,
		URL:  fmt.Sprintf("%s/%s", b.baseURL, slug),
		Icon: "dashicons-" + slug,
	})
	return b
}

// WithN appends n generated endpoints.
func (b *EndpointsBuilder) WithN(n int) *EndpointsBuilder {
	for i := 0; i < n; i++ {
		b.With(fmt.Sprintf("endpoint-%d", i), fmt.Sprintf("Endpoint %d", i))
	}
	return b
}

func (b *EndpointsBuilder) Build() []models.Endpoint {
	return append([]models.Endpoint(nil), b.endpoints...)
}
