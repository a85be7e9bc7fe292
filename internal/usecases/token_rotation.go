package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/api/token"
	"github.com/famtree-app/auth-service/internal/config"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

type TokenRotationUsecase interface {
	// Rotate validates the presented refresh token, invalidates it, and
	// issues a new pair. A token can be rotated exactly once; a second
	// presentation fails as unauthorized, which is how replays surface.
	//
	// Invalidation and the save of the new token commit together. If the
	// save fails the whole rotation rolls back: no new pair was handed out,
	// so restoring the presented token opens no replay window.
	Rotate(ctx context.Context, presentedToken string) (domain.TokenPair, error)
}

func NewTokenRotationUsecase(conf config.AuthConfig, db database.DB, repo repositories.RefreshTokenRepository, issuance TokenIssuanceUsecase) TokenRotationUsecase {
	return tokenRotationUsecase{
		conf:     conf,
		db:       db,
		repo:     repo,
		issuance: issuance,
	}
}

type tokenRotationUsecase struct {
	conf     config.AuthConfig
	db       database.DB
	repo     repositories.RefreshTokenRepository
	issuance TokenIssuanceUsecase
}

func (u tokenRotationUsecase) Rotate(ctx context.Context, presentedToken string) (domain.TokenPair, error) {
	if strings.TrimSpace(presentedToken) == "" {
		return domain.TokenPair{}, domain.NewValidationError("refreshToken", "must not be blank")
	}

	claims, err := u.conf.Signer.VerifyAndParse(presentedToken)
	if err != nil {
		return domain.TokenPair{}, serrors.WithStackTrace(domain.NewUnauthorizedError(err))
	}

	refreshClaims, err := token.ReadRefreshTokenClaimsFrom(claims)
	if err != nil {
		return domain.TokenPair{}, serrors.WithStackTrace(domain.NewUnauthorizedError(err))
	}

	if err := refreshClaims.Validate(time.Now()); err != nil {
		return domain.TokenPair{}, serrors.WithStackTrace(domain.NewUnauthorizedError(err))
	}

	presentedHash := domain.HashRefreshToken(presentedToken)
	now := time.Now()

	var pair domain.TokenPair
	err = u.db.WithTx(ctx, func(ctx context.Context, tx database.Connection) error {
		// Deleting the old token first closes the replay window: a racing
		// second rotation of the same token sees zero affected rows here.
		rows, err := u.repo.DeleteByUserIDAndHash(ctx, tx, refreshClaims.UserID, presentedHash)
		if err != nil {
			return serrors.WithStackTrace(err)
		}
		if rows == 0 {
			return domain.NewUnauthorizedError(domain.RefreshTokenNotFoundError)
		}

		pair, err = u.issuance.IssueWithin(ctx, tx, refreshClaims.Principal(), now)
		if err != nil {
			return serrors.WithStackTrace(err)
		}

		return nil
	})
	if err != nil {
		// The rollback undid the delete as well; no new pair was returned,
		// so the presented token stays usable for a retry.
		return domain.TokenPair{}, serrors.WithStackTrace(err)
	}

	return pair, nil
}
