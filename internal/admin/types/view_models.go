package types

import (
	"html/template"

	"bkap/internal/admin/screen"
)

// PageView is the template input of an admin page shell.
type PageView struct {
	Screen  screen.Context
	Title   string
	Notices template.HTML
}

// Stats summarises the admin notice state for the acting admin.
type Stats struct {
	LicenseActive     bool     `json:"license_active"`
	NoticeSubscribers int      `json:"notice_subscribers"`
	PendingNotices    []string `json:"pending_notices"`
}
