// Package secrets issues and checks the shared admin token.
//
// The token is configured either as plaintext (BKAP_ADMIN_TOKEN) or as a
// bcrypt hash (BKAP_ADMIN_TOKEN_HASH). When both are set only the hash is
// consulted.
package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "bkap/pkg/domain-errors"
)

const tokenBytes = 32

// AdminToken is the admin secret as configured.
type AdminToken struct {
	Plain string
	Hash  string
}

// NewAdminToken hashes plain for BKAP_ADMIN_TOKEN_HASH. An empty plain is
// replaced by a freshly generated token.
func NewAdminToken(plain string) (AdminToken, error) {
	if plain == "" {
		buf := make([]byte, tokenBytes)
		if _, err := rand.Read(buf); err != nil {
			return AdminToken{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not generate admin token")
		}
		plain = base64.RawURLEncoding.EncodeToString(buf)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	switch {
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return AdminToken{}, dErrors.New(dErrors.CodeValidation, "admin token exceeds 72 bytes")
	case err != nil:
		return AdminToken{}, dErrors.Wrap(err, dErrors.CodeInternal, "could not hash admin token")
	}
	return AdminToken{Plain: plain, Hash: string(hashed)}, nil
}

// Configured reports whether any secret is set.
func (t AdminToken) Configured() bool {
	return t.Plain != "" || t.Hash != ""
}

// Env renders the token as the two environment assignments the server reads.
func (t AdminToken) Env() string {
	return fmt.Sprintf("BKAP_ADMIN_TOKEN=%s\nBKAP_ADMIN_TOKEN_HASH=%s\n", t.Plain, t.Hash)
}

// Verify checks a presented token. Rejections carry CodeUnauthorized; a
// malformed configured hash is CodeInternal.
func (t AdminToken) Verify(presented string) error {
	if presented == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "admin token required")
	}
	if t.Hash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(t.Hash), []byte(presented))
		switch {
		case err == nil:
			return nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return dErrors.New(dErrors.CodeUnauthorized, "invalid admin token")
		default:
			return dErrors.Wrap(err, dErrors.CodeInternal, "configured admin token hash is unusable")
		}
	}
	if t.Plain == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(t.Plain)) != 1 {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid admin token")
	}
	return nil
}
