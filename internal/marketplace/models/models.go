// Package models defines the vendor dashboard data shapes.
package models

// DashboardSlug identifies the leading dashboard link of every endpoint list.
const DashboardSlug = "dashboard"

// Endpoint is one navigable vendor dashboard page.
type Endpoint struct {
	Slug string `yaml:"slug" json:"slug"`
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"-" json:"url"`
	Icon string `yaml:"icon" json:"icon"`
}

// EndpointGroup is one visual row of the dashboard grid.
type EndpointGroup []Endpoint

// Vendor is the marketplace vendor the dashboard is rendered for.
type Vendor struct {
	ID       string `json:"id"`
	ShopName string `json:"shop_name"`
}

// View is the complete template input of the dashboard page.
type View struct {
	Groups     []EndpointGroup `json:"groups"`
	Vendor     Vendor          `json:"vendor"`
	TargetSlug string          `json:"target_slug"`
	Heading    string          `json:"heading"`
}

// Len reports how many endpoints the view renders across all groups.
func (v View) Len() int {
	n := 0
	for _, g := range v.Groups {
		n += len(g)
	}
	return n
}
