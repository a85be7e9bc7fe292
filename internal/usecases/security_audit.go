package usecases

import (
	"context"

	"github.com/Siroshun09/logs"
	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

type SecurityEventParams struct {
	EventType   domain.SecurityEventType
	UserID      string
	IPAddress   string
	UserAgent   string
	Description string
}

type SecurityAuditUsecase interface {
	// LogEvent persists one immutable security event and returns its id.
	// The persisted event is additionally surfaced at warn level; that is a
	// logging side effect only and never fails the call.
	LogEvent(ctx context.Context, params SecurityEventParams) (int64, error)
}

func NewSecurityAuditUsecase(db database.DB, repo repositories.SecurityEventRepository) SecurityAuditUsecase {
	return securityAuditUsecase{
		db:   db,
		repo: repo,
	}
}

type securityAuditUsecase struct {
	db   database.DB
	repo repositories.SecurityEventRepository
}

func (u securityAuditUsecase) LogEvent(ctx context.Context, params SecurityEventParams) (int64, error) {
	event, err := domain.NewSecurityEvent(params.EventType, params.UserID, params.IPAddress, params.UserAgent, params.Description)
	if err != nil {
		return 0, err
	}

	id, err := u.repo.Insert(ctx, u.db.Conn(), event)
	if err != nil {
		return 0, serrors.WithStackTrace(err)
	}

	logs.Warnf(ctx, "security event recorded: type=%s user=%s ip=%s: %s",
		event.EventType, event.UserID, event.IPAddress, event.Description)

	return id, nil
}
