package models

import "time"

// StatusResponse is the JSON view of Status.
type StatusResponse struct {
	PluginName string    `json:"plugin_name"`
	Active     bool      `json:"active"`
	Status     string    `json:"status"`
	LicenseKey string    `json:"license_key,omitempty"`
	Expires    string    `json:"expires,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`

	LatestVersion   string `json:"latest_version,omitempty"`
	UpdateAvailable bool   `json:"update_available"`
}

// ToResponse converts a Status for the wire.
func (s *Status) ToResponse() *StatusResponse {
	return &StatusResponse{
		PluginName: s.PluginName,
		Active:     s.Active,
		Status:     s.Status,
		LicenseKey: s.MaskedKey,
		Expires:    s.Expires,
		CheckedAt:  s.CheckedAt,

		LatestVersion:   s.LatestVersion,
		UpdateAvailable: s.UpdateAvailable,
	}
}
