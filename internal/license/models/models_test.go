package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordIsActive(t *testing.T) {
	status := func(s string) *string { return &s }

	cases := []struct {
		name   string
		status *string
		want   bool
	}{
		{"absent", nil, false},
		{"valid", status("valid"), true},
		{"case sensitive", status("Valid"), false},
		{"padded", status(" valid"), false},
		{"expired", status("expired"), false},
		{"empty", status(""), false},
		{"invalid", status("invalid"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Record{PluginID: "bkap", Status: tc.status}.IsActive())
		})
	}
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "****************************cdef", MaskKey("0123456789abcdef0123456789abcdef"))
	assert.Equal(t, "***", MaskKey("abc"))
	assert.Equal(t, "", MaskKey(""))
}

func TestActivateRequestValidate(t *testing.T) {
	req := &ActivateRequest{LicenseKey: "  0123456789abcdef0123456789abcdef \n"}
	req.Normalize()
	assert.NoError(t, req.Validate())

	assert.Error(t, (&ActivateRequest{}).Validate())
	assert.Error(t, (&ActivateRequest{LicenseKey: "not-a-key"}).Validate())
}
