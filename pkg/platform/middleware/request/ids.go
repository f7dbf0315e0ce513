// Package request holds the HTTP middleware applied to every route.
package request

import (
	"net/http"

	"github.com/google/uuid"

	"bkap/pkg/requestcontext"
)

const (
	// HeaderRequestID is read from callers and echoed on every response.
	HeaderRequestID = "X-Request-ID"
	// MaxRequestIDLength bounds caller supplied request ids.
	MaxRequestIDLength = 128
)

// RequestID stores a request id in the context and echoes it back. Caller
// ids are kept only when short and made of [A-Za-z0-9._-].
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if !isValidRequestID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}

func isValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.', c == '_', c == '-':
		default:
			return false
		}
	}
	return true
}
