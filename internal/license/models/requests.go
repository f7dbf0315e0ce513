package models

import (
	"strings"

	"bkap/pkg/validation"
)

// ActivateRequest carries the license key an administrator wants to activate.
type ActivateRequest struct {
	LicenseKey string `json:"license_key" validate:"required,licensekey"`
}

func (r *ActivateRequest) Normalize() {
	r.LicenseKey = strings.TrimSpace(r.LicenseKey)
}

func (r *ActivateRequest) Validate() error {
	return validation.Validate(r)
}
