package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/api/user"
	"github.com/golang-jwt/jwt/v5"
)

type AccessTokenClaims struct {
	BaseClaims

	UserID user.ID
	Email  string
	Name   string
	Role   string
}

func (c AccessTokenClaims) CreateJWTClaims() jwt.Claims {
	claims := jwt.MapClaims{}

	c.SaveBaseClaimsTo(claims)

	claims["uid"] = strconv.FormatInt(int64(c.UserID), 10)
	claims["email"] = c.Email
	claims["name"] = c.Name
	claims["role"] = c.Role

	return claims
}

func (c AccessTokenClaims) Validate(now time.Time) error {
	if err := c.BaseClaims.Validate(now); err != nil {
		return err
	}

	if c.UserID <= 0 {
		return serrors.New("missing uid claim")
	}

	return nil
}

func ReadAccessTokenClaimsFrom(claims jwt.MapClaims) (AccessTokenClaims, error) {
	base, err := ReadBaseClaimsFrom(claims)
	if err != nil {
		return AccessTokenClaims{}, err
	}

	uid, err := readUserIDClaim(claims)
	if err != nil {
		return AccessTokenClaims{}, err
	}

	return AccessTokenClaims{
		BaseClaims: base,
		UserID:     uid,
		Email:      stringClaim(claims, "email"),
		Name:       stringClaim(claims, "name"),
		Role:       stringClaim(claims, "role"),
	}, nil
}

func readUserIDClaim(claims jwt.MapClaims) (user.ID, error) {
	uid, err := strconv.ParseInt(fmt.Sprintf("%v", claims["uid"]), 10, 64)
	if err != nil {
		return 0, serrors.WithStackTrace(err)
	}
	return user.ID(uid), nil
}

func stringClaim(claims jwt.MapClaims, name string) string {
	value, ok := claims[name].(string)
	if !ok {
		return ""
	}
	return value
}
