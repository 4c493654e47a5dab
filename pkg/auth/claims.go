package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/neocodenexus/vendorx-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Username string
	Role     enums.RoleName
	JTI      string
}

// AccessTokenClaims represents the typed JWT issued to clients. The
// username rides in the registered "sub" claim.
type AccessTokenClaims struct {
	Role enums.RoleName `json:"role"`
	jwt.RegisteredClaims
}

// Username returns the subject the token was minted for.
func (c *AccessTokenClaims) Username() string {
	return c.Subject
}
