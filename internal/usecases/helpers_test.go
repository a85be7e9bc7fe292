package usecases

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/famtree-app/auth-service/api/token"
	"github.com/famtree-app/auth-service/api/user"
	"github.com/famtree-app/auth-service/internal/config"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/repositories/database"
	"github.com/golang-jwt/jwt/v5"
)

func newTestAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		Signer:                     token.NewSigner(jwt.SigningMethodHS512, []byte("0123456789abcdef0123456789abcdef")),
		AccessTokenExpireDuration:  15 * time.Minute,
		RefreshTokenExpireDuration: 7 * 24 * time.Hour,
	}
}

func testPrincipal() user.Principal {
	return user.Principal{
		ID:    10,
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  "MEMBER",
	}
}

// fakeDB hands the repositories a nil connection; the in-memory fakes below
// never touch it. WithTx just runs the function.
type fakeDB struct{}

func (fakeDB) Base() *sql.DB { return nil }

func (fakeDB) Conn() database.Connection { return nil }

func (fakeDB) Close() error { return nil }

func (fakeDB) WithTx(ctx context.Context, fn func(ctx context.Context, tx database.Connection) error) error {
	return fn(ctx, nil)
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[user.ID]domain.RefreshToken
	nextID int64

	upsertErr error
	deleteErr error
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[user.ID]domain.RefreshToken{}}
}

func (r *fakeRefreshTokenRepo) Upsert(_ context.Context, _ database.Connection, userID user.ID, tokenHash string, expiresAt time.Time, now time.Time) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.tokens[userID]
	if !ok {
		r.nextID++
		existing = domain.RefreshToken{ID: r.nextID, UserID: userID, CreatedAt: now}
	}
	existing.TokenHash = tokenHash
	existing.ExpiresAt = expiresAt
	existing.UpdatedAt = now
	r.tokens[userID] = existing
	return nil
}

func (r *fakeRefreshTokenRepo) FindByUserID(_ context.Context, _ database.Connection, userID user.ID) (domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[userID]
	if !ok {
		return domain.RefreshToken{}, domain.RefreshTokenNotFoundError
	}
	return stored, nil
}

func (r *fakeRefreshTokenRepo) FindExpired(_ context.Context, _ database.Connection, asOf time.Time) ([]domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var expired []domain.RefreshToken
	for _, stored := range r.tokens {
		if stored.ExpiresAt.Before(asOf) {
			expired = append(expired, stored)
		}
	}
	return expired, nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserID(_ context.Context, _ database.Connection, userID user.ID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, userID)
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteByUserIDAndHash(_ context.Context, _ database.Connection, userID user.ID, tokenHash string) (int64, error) {
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[userID]
	if !ok || stored.TokenHash != tokenHash {
		return 0, nil
	}
	delete(r.tokens, userID)
	return 1, nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context, _ database.Connection, asOf time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for userID, stored := range r.tokens {
		if stored.ExpiresAt.Before(asOf) {
			delete(r.tokens, userID)
			deleted++
		}
	}
	return deleted, nil
}

func (r *fakeRefreshTokenRepo) stored(t *testing.T, userID user.ID) domain.RefreshToken {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[userID]
	if !ok {
		t.Fatalf("no stored refresh token for user %d", userID)
	}
	return stored
}

type fakeSecurityEventRepo struct {
	mu        sync.Mutex
	events    []domain.SecurityEvent
	insertErr error
}

func (r *fakeSecurityEventRepo) Insert(_ context.Context, _ database.Connection, event domain.SecurityEvent) (int64, error) {
	if r.insertErr != nil {
		return 0, r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = int64(len(r.events) + 1)
	r.events = append(r.events, event)
	return event.ID, nil
}

func (r *fakeSecurityEventRepo) recorded() []domain.SecurityEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]domain.SecurityEvent(nil), r.events...)
}

type fakeUserRepo struct {
	principals map[string]user.Principal
}

func (r *fakeUserRepo) FindPrincipalBySub(_ context.Context, _ database.Connection, sub string) (user.Principal, error) {
	principal, ok := r.principals[sub]
	if !ok {
		return user.Principal{}, repositories.UserNotFoundBySubError
	}
	return principal, nil
}
