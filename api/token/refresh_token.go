package token

import (
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/api/user"
	"github.com/golang-jwt/jwt/v5"
)

// RefreshTokenClaims embeds the full principal so that rotation can mint a
// new access token without a user lookup.
type RefreshTokenClaims struct {
	AccessTokenClaims
}

func (c RefreshTokenClaims) CreateJWTClaims() jwt.Claims {
	return c.AccessTokenClaims.CreateJWTClaims()
}

func (c RefreshTokenClaims) Validate(now time.Time) error {
	return c.AccessTokenClaims.Validate(now)
}

func (c RefreshTokenClaims) Principal() user.Principal {
	return user.Principal{
		ID:    c.UserID,
		Email: c.Email,
		Name:  c.Name,
		Role:  c.Role,
	}
}

func ReadRefreshTokenClaimsFrom(claims jwt.MapClaims) (RefreshTokenClaims, error) {
	inner, err := ReadAccessTokenClaimsFrom(claims)
	if err != nil {
		return RefreshTokenClaims{}, err
	}

	if inner.UserID <= 0 {
		return RefreshTokenClaims{}, serrors.New("missing uid claim")
	}

	return RefreshTokenClaims{AccessTokenClaims: inner}, nil
}
