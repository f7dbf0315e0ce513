package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "bkap/pkg/domain-errors"
)

type activateRequest struct {
	LicenseKey string `json:"license_key" validate:"required,licensekey"`
}

type dismissRequest struct {
	Action string `form:"action" validate:"required,oneof=bkap_dismiss_admin_notices bkap_admin_notices"`
	Notice string `form:"notice" validate:"required_if=Action bkap_dismiss_admin_notices,max=64"`
}

func TestValidate(t *testing.T) {
	t.Run("accepts a well formed key", func(t *testing.T) {
		require.NoError(t, Validate(&activateRequest{LicenseKey: "0123456789abcdef0123456789ABCDEF"}))
	})

	t.Run("reports missing field by wire name", func(t *testing.T) {
		err := Validate(&activateRequest{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "license_key is required", err.Error())
	})

	t.Run("rejects malformed key", func(t *testing.T) {
		err := Validate(&activateRequest{LicenseKey: "not-a-key"})
		require.Error(t, err)
		assert.Equal(t, "license_key must be a 32 character license key", err.Error())
	})

	t.Run("form tags are used for names", func(t *testing.T) {
		err := Validate(&dismissRequest{Action: "bkap_delete_everything"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "action must be one of")
	})

	t.Run("conditional requirement", func(t *testing.T) {
		err := Validate(&dismissRequest{Action: "bkap_dismiss_admin_notices"})
		require.Error(t, err)
		assert.Equal(t, "notice is required", err.Error())

		require.NoError(t, Validate(&dismissRequest{Action: "bkap_admin_notices"}))
	})
}

func TestIsLicenseKey(t *testing.T) {
	assert.True(t, IsLicenseKey("ffffffffffffffffffffffffffffffff"))
	assert.False(t, IsLicenseKey("fffff"))
	assert.False(t, IsLicenseKey("gggggggggggggggggggggggggggggggg"))
}
