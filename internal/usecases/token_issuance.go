package usecases

import (
	"context"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/api/token"
	"github.com/famtree-app/auth-service/api/user"
	"github.com/famtree-app/auth-service/internal/config"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
	"github.com/gofrs/uuid/v5"
)

type TokenIssuanceUsecase interface {
	// Issue mints a fresh access+refresh pair for an authenticated principal
	// and persists the refresh token hash, superseding any previous token of
	// that user. The pair is only returned after the save succeeded.
	Issue(ctx context.Context, principal user.Principal) (domain.TokenPair, error)

	// IssueWithin is Issue running on a caller-supplied connection, so that
	// rotation can mint and persist inside its own transaction.
	IssueWithin(ctx context.Context, conn database.Connection, principal user.Principal, now time.Time) (domain.TokenPair, error)
}

func NewTokenIssuanceUsecase(conf config.AuthConfig, db database.DB, repo repositories.RefreshTokenRepository) TokenIssuanceUsecase {
	return tokenIssuanceUsecase{
		conf: conf,
		db:   db,
		repo: repo,
	}
}

type tokenIssuanceUsecase struct {
	conf config.AuthConfig
	db   database.DB
	repo repositories.RefreshTokenRepository
}

func (u tokenIssuanceUsecase) Issue(ctx context.Context, principal user.Principal) (domain.TokenPair, error) {
	return u.IssueWithin(ctx, u.db.Conn(), principal, time.Now())
}

func (u tokenIssuanceUsecase) IssueWithin(ctx context.Context, conn database.Connection, principal user.Principal, now time.Time) (domain.TokenPair, error) {
	if principal.ID <= 0 {
		return domain.TokenPair{}, domain.NewValidationError("principal", "authenticated principal is required")
	}

	accessToken, err := u.mintAccessToken(principal, now)
	if err != nil {
		return domain.TokenPair{}, serrors.WithStackTrace(err)
	}

	refreshToken, refreshExpiresAt, err := u.mintRefreshToken(principal, now)
	if err != nil {
		return domain.TokenPair{}, serrors.WithStackTrace(err)
	}

	// Save before returning the pair; an unsaved refresh token must never
	// reach the client.
	err = u.repo.Upsert(ctx, conn, principal.ID, domain.HashRefreshToken(refreshToken), refreshExpiresAt, now)
	if err != nil {
		return domain.TokenPair{}, serrors.WithStackTrace(err)
	}

	return domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    int64(u.conf.AccessTokenExpireDuration / time.Second),
	}, nil
}

func (u tokenIssuanceUsecase) mintAccessToken(principal user.Principal, now time.Time) (string, error) {
	jti, err := uuid.NewV7()
	if err != nil {
		return "", serrors.WithStackTrace(err)
	}

	claims := token.AccessTokenClaims{
		BaseClaims: token.BaseClaims{
			JTI:       jti,
			NotBefore: now,
			ExpiresAt: now.Add(u.conf.AccessTokenExpireDuration),
		},
		UserID: principal.ID,
		Email:  principal.Email,
		Name:   principal.Name,
		Role:   principal.Role,
	}

	return u.conf.Signer.Sign(claims.CreateJWTClaims())
}

func (u tokenIssuanceUsecase) mintRefreshToken(principal user.Principal, now time.Time) (string, time.Time, error) {
	jti, err := uuid.NewV7()
	if err != nil {
		return "", time.Time{}, serrors.WithStackTrace(err)
	}

	expiresAt := now.Add(u.conf.RefreshTokenExpireDuration)
	claims := token.RefreshTokenClaims{
		AccessTokenClaims: token.AccessTokenClaims{
			BaseClaims: token.BaseClaims{
				JTI:       jti,
				NotBefore: now,
				ExpiresAt: expiresAt,
			},
			UserID: principal.ID,
			Email:  principal.Email,
			Name:   principal.Name,
			Role:   principal.Role,
		},
	}

	tokenString, err := u.conf.Signer.Sign(claims.CreateJWTClaims())
	if err != nil {
		return "", time.Time{}, serrors.WithStackTrace(err)
	}

	return tokenString, expiresAt, nil
}
