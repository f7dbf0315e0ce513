package models

import (
	"net/url"
	"strings"

	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/validation"
)

// DismissRequest is the admin-ajax form posted by the page.
type DismissRequest struct {
	Action string `form:"action" validate:"required,oneof=bkap_dismiss_admin_notices bkap_admin_notices"`
	Notice string `form:"notice" validate:"required_if=Action bkap_dismiss_admin_notices"`
}

func (r *DismissRequest) BindForm(v url.Values) {
	r.Action = v.Get("action")
	r.Notice = v.Get("notice")
}

func (r *DismissRequest) Normalize() {
	r.Action = strings.TrimSpace(r.Action)
	r.Notice = strings.TrimSpace(r.Notice)
}

func (r *DismissRequest) Validate() error {
	if err := validation.Validate(r); err != nil {
		return err
	}
	if _, ok := KeyFor(r.Payload()); !ok {
		return dErrors.New(dErrors.CodeValidation, "notice must be one of [bkap-meeting-notice bkap-timeslot-notice]")
	}
	return nil
}

// Payload returns the request as a dismissal payload.
func (r *DismissRequest) Payload() Payload {
	return Payload{Notice: r.Notice, Action: r.Action}
}

// DismissResponse acknowledges a dismissal.
type DismissResponse struct {
	Dismissed string `json:"dismissed"`
}
