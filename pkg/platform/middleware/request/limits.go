package request

import (
	"mime"
	"net/http"
	"time"

	"bkap/pkg/platform/httputil"
)

// Timeout bounds handler execution. Handlers past the deadline get a 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, `{"error":"timeout"}`)
	}
}

// BodyLimit caps request bodies at maxBytes.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// ContentTypeJSON rejects write requests whose body is not JSON.
func ContentTypeJSON(next http.Handler) http.Handler {
	return mediaType("application/json", next)
}

// ContentTypeForm rejects write requests whose body is not url-encoded, which
// is how admin-ajax callers post.
func ContentTypeForm(next http.Handler) http.Handler {
	return mediaType("application/x-www-form-urlencoded", next)
}

// mediaType checks POST, PUT and PATCH requests that declare a Content-Type.
func mediaType(want string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			next.ServeHTTP(w, r)
			return
		}
		ct := r.Header.Get("Content-Type")
		if ct == "" {
			next.ServeHTTP(w, r)
			return
		}
		if got, _, err := mime.ParseMediaType(ct); err == nil && got == want {
			next.ServeHTTP(w, r)
			return
		}
		httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.ErrorResponse{
			Error:       "invalid_content_type",
			Description: "Content-Type must be " + want,
		})
	})
}
