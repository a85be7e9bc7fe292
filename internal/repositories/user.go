package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/famtree-app/auth-service/api/user"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

var UserNotFoundBySubError = errors.New("user not found by sub")

// UserRepository reads from the users table owned by the famtree backend.
// This service only looks principals up; it never writes user rows.
type UserRepository interface {
	FindPrincipalBySub(ctx context.Context, conn database.Connection, sub string) (user.Principal, error)
}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

type userRepository struct{}

func (r userRepository) FindPrincipalBySub(ctx context.Context, conn database.Connection, sub string) (user.Principal, error) {
	row := conn.QueryRowContext(ctx, `
		SELECT id, email, name, role
		FROM users
		WHERE google_sub = ?
	`, sub)

	var principal user.Principal
	var id int64
	err := row.Scan(&id, &principal.Email, &principal.Name, &principal.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Principal{}, UserNotFoundBySubError
	} else if err != nil {
		return user.Principal{}, database.NewDBErrorWithStackTrace(err)
	}

	principal.ID = user.ID(id)
	return principal, nil
}
