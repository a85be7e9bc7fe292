package config

import (
	"encoding/hex"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/api/token"
	"github.com/golang-jwt/jwt/v5"
)

type AuthConfig struct {
	Signer                     token.Signer
	AccessTokenExpireDuration  time.Duration
	RefreshTokenExpireDuration time.Duration
}

func NewAuthConfigFromEnv() (AuthConfig, error) {
	privateKeyHex, err := getRequiredString("AUTH_SERVICE_PRIVATE_KEY")
	if err != nil {
		return AuthConfig{}, err
	}

	privateKey, err := hex.DecodeString(privateKeyHex)
	if err != nil {
		return AuthConfig{}, serrors.Errorf("failed to decode AUTH_SERVICE_PRIVATE_KEY: %w", err)
	} else if len(privateKey) != 32 {
		return AuthConfig{}, serrors.New("AUTH_SERVICE_PRIVATE_KEY must be hex value of 32 bytes long")
	}

	accessTokenExpire, err := getDurationFromEnv("AUTH_SERVICE_ACCESS_TOKEN_EXPIRE", 15*time.Minute)
	if err != nil {
		return AuthConfig{}, err
	}

	refreshTokenExpire, err := getDurationFromEnv("AUTH_SERVICE_REFRESH_TOKEN_EXPIRE", 7*24*time.Hour)
	if err != nil {
		return AuthConfig{}, err
	}

	return AuthConfig{
		Signer:                     token.NewSigner(jwt.SigningMethodHS512, privateKey),
		AccessTokenExpireDuration:  accessTokenExpire,
		RefreshTokenExpireDuration: refreshTokenExpire,
	}, nil
}
