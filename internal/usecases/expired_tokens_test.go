package usecases

import (
	"testing"
	"time"

	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiredTokenUsecase(t *testing.T) {
	repo := newFakeRefreshTokenRepo()
	usecase := NewExpiredTokenUsecase(fakeDB{}, repo)

	now := time.Now()
	require.NoError(t, repo.Upsert(t.Context(), nil, 10, "hash-live", now.Add(time.Hour), now))
	require.NoError(t, repo.Upsert(t.Context(), nil, 11, "hash-stale", now.Add(-time.Minute), now))

	expired, err := usecase.FindExpired(t.Context(), now)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "hash-stale", expired[0].TokenHash)

	deleted, err := usecase.DeleteExpired(t.Context(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	// The live token survives the sweep.
	_, err = repo.FindByUserID(t.Context(), nil, 10)
	assert.NoError(t, err)
	_, err = repo.FindByUserID(t.Context(), nil, 11)
	assert.ErrorIs(t, err, domain.RefreshTokenNotFoundError)
}
