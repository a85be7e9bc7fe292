package usecases

import (
	"context"

	"github.com/famtree-app/auth-service/api/user"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

type UserUsecase interface {
	GetPrincipalBySub(ctx context.Context, sub string) (user.Principal, error)
}

func NewUserUsecase(db database.DB, repo repositories.UserRepository) UserUsecase {
	return userUsecase{
		db:   db,
		repo: repo,
	}
}

type userUsecase struct {
	db   database.DB
	repo repositories.UserRepository
}

func (u userUsecase) GetPrincipalBySub(ctx context.Context, sub string) (user.Principal, error) {
	principal, err := u.repo.FindPrincipalBySub(ctx, u.db.Conn(), sub)
	if err != nil {
		return user.Principal{}, err
	}
	return principal, nil
}
