package models

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

// StatusValid is the only persisted status that counts as an active license.
const (
	StatusValid       = "valid"
	StatusDeactivated = "deactivated"
)

// Record is the persisted license state of one plugin. Status is nil when
// nothing has been stored yet.
type Record struct {
	PluginID string
	Status   *string
}

// IsActive reports whether the stored status is exactly "valid".
func (r Record) IsActive() bool {
	return r.Status != nil && *r.Status == StatusValid
}

// NoticeDescriptor is the transient description of one rendered admin notice.
type NoticeDescriptor struct {
	Classes    []string
	DismissKey string
	Message    template.HTML
}

// ClassAttr joins Classes for the class attribute.
func (n NoticeDescriptor) ClassAttr() string {
	return strings.Join(n.Classes, " ")
}

// RemoteLicense is the answer of the remote licensing service for one key.
type RemoteLicense struct {
	Success       bool
	Status        string
	Error         string
	Expires       string
	ItemName      string
	CustomerEmail string
	SiteCount     int
	LicenseLimit  int
}

// Status is the license state reported to administrators.
type Status struct {
	PluginName string
	KeySet     bool
	MaskedKey  string
	Status     string
	Active     bool
	Expires    string
	CheckedAt  time.Time

	LatestVersion   string
	UpdateAvailable bool
}

// MaskKey keeps the last four characters of a license key.
func MaskKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// RejectionMessage explains why the remote service refused a license.
func RejectionMessage(lic *RemoteLicense, pluginName string) string {
	switch lic.Error {
	case "expired":
		if lic.Expires != "" {
			return fmt.Sprintf("your license key expired on %s", lic.Expires)
		}
		return "your license key has expired"
	case "disabled", "revoked":
		return "your license key has been disabled"
	case "missing":
		return "invalid license"
	case "invalid", "site_inactive":
		return "your license is not active for this URL"
	case "item_name_mismatch":
		return fmt.Sprintf("this appears to be an invalid license key for %s", pluginName)
	case "no_activations_left":
		return "your license key has reached its activation limit"
	default:
		return "an error occurred, please try again"
	}
}
