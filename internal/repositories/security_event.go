package repositories

import (
	"context"
	"database/sql"

	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories/database"
)

type SecurityEventRepository interface {
	// Insert appends one immutable event row and returns its id. There is no
	// update or delete; retention is not this service's concern.
	Insert(ctx context.Context, conn database.Connection, event domain.SecurityEvent) (int64, error)
}

func NewSecurityEventRepository() SecurityEventRepository {
	return &securityEventRepository{}
}

type securityEventRepository struct{}

func (r securityEventRepository) Insert(ctx context.Context, conn database.Connection, event domain.SecurityEvent) (int64, error) {
	userID := sql.NullString{String: event.UserID, Valid: event.UserID != ""}
	userAgent := sql.NullString{String: event.UserAgent, Valid: event.UserAgent != ""}

	result, err := conn.ExecContext(ctx, `
		INSERT INTO security_events (event_type, user_id, ip_address, user_agent, description, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(event.EventType), userID, event.IPAddress, userAgent, event.Description, event.OccurredAt)
	if err != nil {
		return 0, database.NewDBErrorWithStackTrace(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, database.NewDBErrorWithStackTrace(err)
	}
	return id, nil
}
