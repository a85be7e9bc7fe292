package usecases

import (
	"context"
	"strconv"

	"github.com/Siroshun09/logs"
	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/api/user"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

type SessionTerminationUsecase interface {
	// Logout deletes the user's refresh token. It is idempotent: logging out
	// with no live session is still a success.
	Logout(ctx context.Context, userID user.ID, client domain.ClientInfo) error
}

func NewSessionTerminationUsecase(db database.DB, repo repositories.RefreshTokenRepository, audit SecurityAuditUsecase) SessionTerminationUsecase {
	return sessionTerminationUsecase{
		db:    db,
		repo:  repo,
		audit: audit,
	}
}

type sessionTerminationUsecase struct {
	db    database.DB
	repo  repositories.RefreshTokenRepository
	audit SecurityAuditUsecase
}

func (u sessionTerminationUsecase) Logout(ctx context.Context, userID user.ID, client domain.ClientInfo) error {
	if userID <= 0 {
		return domain.NewValidationError("userId", "must be positive")
	}

	if err := u.repo.DeleteByUserID(ctx, u.db.Conn(), userID); err != nil {
		return serrors.WithStackTrace(err)
	}

	// Audit is a secondary concern; an audit-store outage must not undo a
	// logout that already happened.
	_, err := u.audit.LogEvent(ctx, SecurityEventParams{
		EventType:   domain.SecurityEventLogoutSuccess,
		UserID:      strconv.FormatInt(int64(userID), 10),
		IPAddress:   client.IPAddress,
		UserAgent:   client.UserAgent,
		Description: "user logged out",
	})
	if err != nil {
		logs.Warn(ctx, err)
	}

	return nil
}
