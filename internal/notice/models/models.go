// Package models defines the dismissible admin notices and the payloads the
// page posts when one of them is dismissed.
package models

import (
	"net/url"
	"time"
)

// Marker identifies a dismissible notice kind by its CSS marker class suffix.
type Marker string

const (
	MarkerMeeting  Marker = "meeting-notice"
	MarkerTracker  Marker = "tracker"
	MarkerTimeslot Marker = "timeslot-notice"
)

// Class is the CSS class carried by notices of this kind.
func (m Marker) Class() string {
	return "bkap-" + string(m)
}

// Ajax actions accepted by the dismissal endpoint.
const (
	ActionDismissNotice = "bkap_dismiss_admin_notices"
	ActionTracker       = "bkap_admin_notices"
)

// Notice keys recorded per actor once dismissed.
const (
	KeyMeeting  = "bkap-meeting-notice"
	KeyTimeslot = "bkap-timeslot-notice"
	KeyTracker  = "bkap-tracker"
)

// Payload is the body posted when a notice is dismissed. Notice is empty for
// the tracker notice.
type Payload struct {
	Notice string
	Action string
}

// Values encodes the payload as form fields, omitting an empty notice.
func (p Payload) Values() url.Values {
	v := url.Values{}
	if p.Notice != "" {
		v.Set("notice", p.Notice)
	}
	v.Set("action", p.Action)
	return v
}

var payloads = map[Marker]Payload{
	MarkerMeeting:  {Notice: KeyMeeting, Action: ActionDismissNotice},
	MarkerTracker:  {Action: ActionTracker},
	MarkerTimeslot: {Notice: KeyTimeslot, Action: ActionDismissNotice},
}

// PayloadFor returns the dismissal payload of marker.
func PayloadFor(m Marker) (Payload, bool) {
	p, ok := payloads[m]
	return p, ok
}

// Markers lists the recognised markers in render order.
func Markers() []Marker {
	return []Marker{MarkerMeeting, MarkerTimeslot, MarkerTracker}
}

// Definition is one dismissible notice shown to administrators until dismissed.
type Definition struct {
	Marker Marker
	Key    string
	MsgID  string
}

// Definitions are the dismissible notices in render order.
var Definitions = []Definition{
	{
		Marker: MarkerMeeting,
		Key:    KeyMeeting,
		MsgID:  "Zoom and Google Meet integrations are now available. Set up virtual meetings for your bookable products.",
	},
	{
		Marker: MarkerTimeslot,
		Key:    KeyTimeslot,
		MsgID:  "Time slots are now managed from the new availability screen. Review your existing time slots.",
	},
	{
		Marker: MarkerTracker,
		Key:    KeyTracker,
		MsgID:  "Want to help make the booking plugin even better? Allow us to collect non-sensitive diagnostic data and usage information.",
	},
}

// KeyFor resolves the notice key recorded for a dismissal payload.
func KeyFor(p Payload) (string, bool) {
	switch p.Action {
	case ActionTracker:
		return KeyTracker, true
	case ActionDismissNotice:
		if p.Notice == KeyMeeting || p.Notice == KeyTimeslot {
			return p.Notice, true
		}
	}
	return "", false
}

// DismissedEvent is published after a notice has been dismissed.
type DismissedEvent struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actor_id"`
	NoticeKey   string    `json:"notice_key"`
	Action      string    `json:"action"`
	Browser     string    `json:"browser,omitempty"`
	ClientIP    string    `json:"client_ip,omitempty"`
	DismissedAt time.Time `json:"dismissed_at"`
}
