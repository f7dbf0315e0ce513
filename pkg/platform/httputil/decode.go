package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	dErrors "bkap/pkg/domain-errors"
)

type Validatable interface {
	Validate() error
}

// Normalizable requests trim or canonicalise their fields before validation.
type Normalizable interface {
	Normalize()
}

// FormBinder requests are filled from an url-encoded body, as sent by the
// notice dismissal script.
type FormBinder interface {
	BindForm(values url.Values)
}

// PrepareRequest runs Normalize then Validate when req implements them.
func PrepareRequest(req any) error {
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := req.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

// DecodeJSON reads a JSON body into a new T and prepares it. On failure the
// error reply has already been written and ok is false.
func DecodeJSON[T any](ctx context.Context, w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body", "error", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return prepare(ctx, w, &req, logger)
}

// DecodeForm is DecodeJSON for url-encoded bodies.
func DecodeForm[T any, PT interface {
	*T
	FormBinder
}](ctx context.Context, w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	if err := r.ParseForm(); err != nil {
		logger.WarnContext(ctx, "failed to parse form body", "error", err)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid form body"))
		return nil, false
	}
	req := PT(new(T))
	req.BindForm(r.PostForm)
	return prepare(ctx, w, (*T)(req), logger)
}

func prepare[T any](ctx context.Context, w http.ResponseWriter, req *T, logger *slog.Logger) (*T, bool) {
	err := PrepareRequest(req)
	if err == nil {
		return req, true
	}
	logger.WarnContext(ctx, "invalid request", "error", err)
	var de *dErrors.Error
	if !errors.As(err, &de) {
		err = dErrors.New(dErrors.CodeValidation, err.Error())
	}
	WriteError(w, err)
	return nil, false
}
