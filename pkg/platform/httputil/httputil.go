// Package httputil writes JSON and HTML responses and decodes request bodies.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "bkap/pkg/domain-errors"
)

// retryAfterSeconds is advertised when the licensing store is down.
const retryAfterSeconds = "30"

type errorMapping struct {
	status int
	code   string
}

var errorMappings = map[dErrors.Code]errorMapping{
	dErrors.CodeBadRequest:         {http.StatusBadRequest, "bad_request"},
	dErrors.CodeValidation:         {http.StatusBadRequest, "validation_error"},
	dErrors.CodeInvariantViolation: {http.StatusBadRequest, "validation_error"},
	dErrors.CodeUnauthorized:       {http.StatusUnauthorized, "unauthorized"},
	dErrors.CodeForbidden:          {http.StatusForbidden, "forbidden"},
	dErrors.CodeNotFound:           {http.StatusNotFound, "not_found"},
	dErrors.CodeLicenseRejected:    {http.StatusUnprocessableEntity, "license_rejected"},
	dErrors.CodeServiceUnavailable: {http.StatusBadGateway, "licensing_unavailable"},
	dErrors.CodeTimeout:            {http.StatusGatewayTimeout, "licensing_timeout"},
}

var internalMapping = errorMapping{http.StatusInternalServerError, "internal_error"}

func mappingFor(code dErrors.Code) errorMapping {
	if m, ok := errorMappings[code]; ok {
		return m
	}
	return internalMapping
}

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteHTML writes an already rendered document or fragment.
func WriteHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteError replies with the status and public code of err's category.
// Messages of unclassified errors are never exposed.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.Error
	if !errors.As(err, &de) {
		WriteJSON(w, internalMapping.status, ErrorResponse{Error: internalMapping.code})
		return
	}
	m := mappingFor(de.Code)
	if dErrors.Temporary(err) {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	WriteJSON(w, m.status, ErrorResponse{Error: m.code, Description: de.Message})
}

