// Package session issues and validates vendor dashboard bearer tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"bkap/internal/marketplace/models"
	dErrors "bkap/pkg/domain-errors"
	"bkap/pkg/platform/middleware/auth"
	"bkap/pkg/platform/middleware/requesttime"
)

// Audience is the aud claim every vendor token carries.
const Audience = "bkap-vendor-dashboard"

// Claims is the JWT payload of a vendor session token.
type Claims struct {
	VendorID string `json:"vendor_id"`
	ShopName string `json:"shop_name,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies HS256 vendor tokens.
type Service struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

var _ auth.TokenValidator = (*Service)(nil)

func New(signingKey, issuer string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// Issue signs a token for vendor. The issue time comes from the request clock.
func (s *Service) Issue(ctx context.Context, vendor models.Vendor) (string, error) {
	if vendor.ID == "" {
		return "", dErrors.New(dErrors.CodeValidation, "vendor id is required")
	}
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	now := requesttime.Now(ctx)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		VendorID: vendor.ID,
		ShopName: vendor.ShopName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   vendor.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{Audience},
			ID:        hex.EncodeToString(b),
		},
	})
	return token.SignedString(s.signingKey)
}

func (s *Service) ValidateToken(tokenString string) (*auth.VendorClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(Audience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	return &auth.VendorClaims{
		VendorID: claims.VendorID,
		ShopName: claims.ShopName,
	}, nil
}
