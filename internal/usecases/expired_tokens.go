package usecases

import (
	"context"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

// ExpiredTokenUsecase exposes the queries an external cleanup job needs.
// Scheduling is not this service's concern.
type ExpiredTokenUsecase interface {
	FindExpired(ctx context.Context, asOf time.Time) ([]domain.RefreshToken, error)
	DeleteExpired(ctx context.Context, asOf time.Time) (int64, error)
}

func NewExpiredTokenUsecase(db database.DB, repo repositories.RefreshTokenRepository) ExpiredTokenUsecase {
	return expiredTokenUsecase{
		db:   db,
		repo: repo,
	}
}

type expiredTokenUsecase struct {
	db   database.DB
	repo repositories.RefreshTokenRepository
}

func (u expiredTokenUsecase) FindExpired(ctx context.Context, asOf time.Time) ([]domain.RefreshToken, error) {
	expired, err := u.repo.FindExpired(ctx, u.db.Conn(), asOf)
	if err != nil {
		return nil, serrors.WithStackTrace(err)
	}
	return expired, nil
}

func (u expiredTokenUsecase) DeleteExpired(ctx context.Context, asOf time.Time) (int64, error) {
	deleted, err := u.repo.DeleteExpired(ctx, u.db.Conn(), asOf)
	if err != nil {
		return 0, serrors.WithStackTrace(err)
	}
	return deleted, nil
}
