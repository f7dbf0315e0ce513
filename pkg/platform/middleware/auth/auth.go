// Package auth authenticates vendor dashboard requests.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/platform/httputil"
	"bkap/pkg/requestcontext"
)

// SessionCookie carries the vendor token for browser navigation, where an
// Authorization header cannot be set on plain links.
const SessionCookie = "bkap_vendor_session"

// VendorClaims identify the vendor a session token was issued to.
type VendorClaims struct {
	VendorID string
	ShopName string
}

type TokenValidator interface {
	ValidateToken(token string) (*VendorClaims, error)
}

// bearer returns the token from the Authorization header, falling back to
// the session cookie when no header is sent.
func bearer(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); h != "" {
		tok, ok := strings.CutPrefix(h, "Bearer ")
		return strings.TrimSpace(tok), ok && strings.TrimSpace(tok) != ""
	}
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}

// RequireVendor rejects requests without a valid vendor token and stores
// the vendor in the request context.
func RequireVendor(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			deny := func(reason string, err error) {
				logger.WarnContext(ctx, "vendor access denied",
					"reason", reason,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, err)
			}

			token, ok := bearer(r)
			if !ok {
				deny("missing token", dErrors.New(dErrors.CodeUnauthorized, "Missing or invalid Authorization header"))
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				deny(err.Error(), dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
				return
			}
			if claims.VendorID == "" {
				deny("token without vendor", dErrors.New(dErrors.CodeForbidden, "Token is not bound to a vendor"))
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithVendor(ctx, requestcontext.Vendor{
				ID:       claims.VendorID,
				ShopName: claims.ShopName,
			})))
		})
	}
}
