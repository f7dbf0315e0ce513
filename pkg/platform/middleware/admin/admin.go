package admin

import (
	"log/slog"
	"net/http"

	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/platform/httputil"
	"bkap/pkg/requestcontext"
	"bkap/pkg/secrets"
)

// DefaultActorID attributes admin requests that carry no X-Admin-Actor-ID.
const DefaultActorID = "admin"

// RequireAdminToken rejects requests without a valid X-Admin-Token and stores
// the acting admin (X-Admin-Actor-ID) in the request context.
func RequireAdminToken(token secrets.AdminToken, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if err := token.Verify(r.Header.Get("X-Admin-Token")); err != nil {
				level := slog.LevelWarn
				if !dErrors.HasCode(err, dErrors.CodeUnauthorized) {
					level = slog.LevelError
				}
				logger.Log(ctx, level, "admin token rejected",
					"request_id", requestcontext.RequestID(ctx),
					"path", r.URL.Path,
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}

			actorID := r.Header.Get("X-Admin-Actor-ID")
			if actorID == "" {
				actorID = DefaultActorID
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithActorID(ctx, actorID)))
		})
	}
}
