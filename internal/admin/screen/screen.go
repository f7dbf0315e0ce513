// Package screen describes the admin screen being rendered and the events
// dispatched while rendering it.
package screen

import (
	"io"

	"bkap/internal/platform/hooks"
)

// Context identifies the admin screen for the current request.
type Context struct {
	ID       string
	Base     string
	PostType string
}

// NoticesEvent is the payload of the admin_notices action. Subscribers write
// their notice markup to Out.
type NoticesEvent struct {
	Screen Context
	Out    io.Writer
}

// AdminNotices fires once per admin page render, before the page body.
var AdminNotices = hooks.NewTopic[*NoticesEvent]("admin_notices")
