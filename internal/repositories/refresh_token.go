package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/famtree-app/auth-service/api/user"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

type RefreshTokenRepository interface {
	// Upsert stores the token hash for the user, superseding any previous
	// row. The unique index on user_id makes this a single atomic statement,
	// so two concurrent issuances for the same user cannot leave two live
	// rows.
	Upsert(ctx context.Context, conn database.Connection, userID user.ID, tokenHash string, expiresAt time.Time, now time.Time) error
	FindByUserID(ctx context.Context, conn database.Connection, userID user.ID) (domain.RefreshToken, error)
	FindExpired(ctx context.Context, conn database.Connection, asOf time.Time) ([]domain.RefreshToken, error)
	DeleteByUserID(ctx context.Context, conn database.Connection, userID user.ID) error
	// DeleteByUserIDAndHash removes the row only if it still holds the given
	// hash and reports how many rows went away. Zero means the presented
	// token was already rotated, revoked, or never existed.
	DeleteByUserIDAndHash(ctx context.Context, conn database.Connection, userID user.ID, tokenHash string) (int64, error)
	DeleteExpired(ctx context.Context, conn database.Connection, asOf time.Time) (int64, error)
}

func NewRefreshTokenRepository() RefreshTokenRepository {
	return &refreshTokenRepository{}
}

type refreshTokenRepository struct{}

func (r refreshTokenRepository) Upsert(ctx context.Context, conn database.Connection, userID user.ID, tokenHash string, expiresAt time.Time, now time.Time) error {
	if userID <= 0 {
		return domain.NewValidationError("userId", "must be positive")
	}
	if strings.TrimSpace(tokenHash) == "" {
		return domain.NewValidationError("tokenValue", "must not be blank")
	}
	if expiresAt.IsZero() {
		return domain.NewValidationError("expiresAt", "must be set")
	}

	_, err := conn.ExecContext(ctx, `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			token_hash = VALUES(token_hash),
			expires_at = VALUES(expires_at),
			updated_at = VALUES(updated_at)
	`, int64(userID), tokenHash, expiresAt, now, now)
	if err != nil {
		return database.NewDBErrorWithStackTrace(err)
	}
	return nil
}

func (r refreshTokenRepository) FindByUserID(ctx context.Context, conn database.Connection, userID user.ID) (domain.RefreshToken, error) {
	row := conn.QueryRowContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, created_at, updated_at
		FROM refresh_tokens
		WHERE user_id = ?
	`, int64(userID))

	token, err := scanRefreshToken(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RefreshToken{}, domain.RefreshTokenNotFoundError
	} else if err != nil {
		return domain.RefreshToken{}, database.NewDBErrorWithStackTrace(err)
	}

	return token, nil
}

func (r refreshTokenRepository) FindExpired(ctx context.Context, conn database.Connection, asOf time.Time) ([]domain.RefreshToken, error) {
	rows, err := conn.QueryContext(ctx, `
		SELECT id, user_id, token_hash, expires_at, created_at, updated_at
		FROM refresh_tokens
		WHERE expires_at < ?
	`, asOf)
	if err != nil {
		return nil, database.NewDBErrorWithStackTrace(err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var expired []domain.RefreshToken
	for rows.Next() {
		token, err := scanRefreshToken(rows.Scan)
		if err != nil {
			return nil, database.NewDBErrorWithStackTrace(err)
		}
		expired = append(expired, token)
	}
	if err := rows.Err(); err != nil {
		return nil, database.NewDBErrorWithStackTrace(err)
	}

	return expired, nil
}

func (r refreshTokenRepository) DeleteByUserID(ctx context.Context, conn database.Connection, userID user.ID) error {
	_, err := conn.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE user_id = ?
	`, int64(userID))
	if err != nil {
		return database.NewDBErrorWithStackTrace(err)
	}
	return nil
}

func (r refreshTokenRepository) DeleteByUserIDAndHash(ctx context.Context, conn database.Connection, userID user.ID, tokenHash string) (int64, error) {
	result, err := conn.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE user_id = ? AND token_hash = ?
	`, int64(userID), tokenHash)
	if err != nil {
		return 0, database.NewDBErrorWithStackTrace(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, database.NewDBErrorWithStackTrace(err)
	}
	return rows, nil
}

func (r refreshTokenRepository) DeleteExpired(ctx context.Context, conn database.Connection, asOf time.Time) (int64, error) {
	result, err := conn.ExecContext(ctx, `
		DELETE FROM refresh_tokens
		WHERE expires_at < ?
	`, asOf)
	if err != nil {
		return 0, database.NewDBErrorWithStackTrace(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, database.NewDBErrorWithStackTrace(err)
	}
	return rows, nil
}

func scanRefreshToken(scan func(dest ...any) error) (domain.RefreshToken, error) {
	var token domain.RefreshToken
	var userID int64
	err := scan(&token.ID, &userID, &token.TokenHash, &token.ExpiresAt, &token.CreatedAt, &token.UpdatedAt)
	if err != nil {
		return domain.RefreshToken{}, err
	}
	token.UserID = user.ID(userID)
	return token, nil
}
