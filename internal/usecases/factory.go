package usecases

import (
	"github.com/famtree-app/auth-service/internal/config"
	"github.com/famtree-app/auth-service/internal/ratelimit"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

type UsecaseFactory struct {
	AuthConfig        config.AuthConfig
	DB                database.DB
	Limiter           *ratelimit.Limiter
	RefreshTokenRepo  repositories.RefreshTokenRepository
	SecurityEventRepo repositories.SecurityEventRepository
	UserRepo          repositories.UserRepository
}

func NewUsecaseFactory(conf config.AuthConfig, db database.DB, limiter *ratelimit.Limiter) UsecaseFactory {
	return UsecaseFactory{
		AuthConfig:        conf,
		DB:                db,
		Limiter:           limiter,
		RefreshTokenRepo:  repositories.NewRefreshTokenRepository(),
		SecurityEventRepo: repositories.NewSecurityEventRepository(),
		UserRepo:          repositories.NewUserRepository(),
	}
}

func (f UsecaseFactory) NewTokenIssuanceUsecase() TokenIssuanceUsecase {
	return NewTokenIssuanceUsecase(f.AuthConfig, f.DB, f.RefreshTokenRepo)
}

func (f UsecaseFactory) NewTokenRotationUsecase() TokenRotationUsecase {
	return NewTokenRotationUsecase(f.AuthConfig, f.DB, f.RefreshTokenRepo, f.NewTokenIssuanceUsecase())
}

func (f UsecaseFactory) NewSecurityAuditUsecase() SecurityAuditUsecase {
	return NewSecurityAuditUsecase(f.DB, f.SecurityEventRepo)
}

func (f UsecaseFactory) NewSessionTerminationUsecase() SessionTerminationUsecase {
	return NewSessionTerminationUsecase(f.DB, f.RefreshTokenRepo, f.NewSecurityAuditUsecase())
}

func (f UsecaseFactory) NewRateLimitUsecase() RateLimitUsecase {
	return NewRateLimitUsecase(f.Limiter)
}

func (f UsecaseFactory) NewExpiredTokenUsecase() ExpiredTokenUsecase {
	return NewExpiredTokenUsecase(f.DB, f.RefreshTokenRepo)
}

func (f UsecaseFactory) NewUserUsecase() UserUsecase {
	return NewUserUsecase(f.DB, f.UserRepo)
}
