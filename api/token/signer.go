package token

import (
	"github.com/Siroshun09/serrors"
	"github.com/golang-jwt/jwt/v5"
)

type Signer interface {
	Sign(claims jwt.Claims) (string, error)
	VerifyAndParse(tokenString string) (jwt.MapClaims, error)
}

func NewSigner(method jwt.SigningMethod, key []byte) Signer {
	return signer{method: method, key: key}
}

type signer struct {
	method jwt.SigningMethod
	key    []byte
}

func (s signer) Sign(claims jwt.Claims) (string, error) {
	tokenString, err := jwt.NewWithClaims(s.method, claims).SignedString(s.key)
	if err != nil {
		return "", serrors.WithStackTrace(err)
	}
	return tokenString, nil
}

func (s signer) VerifyAndParse(tokenString string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, serrors.Errorf("unexpected signing method: %s", t.Method.Alg())
		}
		return s.key, nil
	})
	if err != nil {
		return nil, serrors.WithStackTrace(err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, serrors.New("unexpected claims type")
	}

	return claims, nil
}
