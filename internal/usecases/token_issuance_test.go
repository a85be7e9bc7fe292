package usecases

import (
	"errors"
	"testing"
	"time"

	"github.com/famtree-app/auth-service/api/token"
	"github.com/famtree-app/auth-service/api/user"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuanceUsecase_Issue(t *testing.T) {
	conf := newTestAuthConfig()

	t.Run("success", func(t *testing.T) {
		repo := newFakeRefreshTokenRepo()
		usecase := NewTokenIssuanceUsecase(conf, fakeDB{}, repo)

		pair, err := usecase.Issue(t.Context(), testPrincipal())
		require.NoError(t, err)

		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
		assert.Equal(t, domain.TokenTypeBearer, pair.TokenType)
		assert.Equal(t, int64(15*60), pair.ExpiresIn)

		stored := repo.stored(t, 10)
		assert.Equal(t, domain.HashRefreshToken(pair.RefreshToken), stored.TokenHash)
		assert.NotContains(t, stored.TokenHash, pair.RefreshToken)
	})

	t.Run("success: access token carries the principal", func(t *testing.T) {
		usecase := NewTokenIssuanceUsecase(conf, fakeDB{}, newFakeRefreshTokenRepo())

		pair, err := usecase.Issue(t.Context(), testPrincipal())
		require.NoError(t, err)

		claims, err := conf.Signer.VerifyAndParse(pair.AccessToken)
		require.NoError(t, err)

		accessClaims, err := token.ReadAccessTokenClaimsFrom(claims)
		require.NoError(t, err)
		assert.Equal(t, user.ID(10), accessClaims.UserID)
		assert.Equal(t, "alice@example.com", accessClaims.Email)
		assert.Equal(t, "MEMBER", accessClaims.Role)
		assert.False(t, accessClaims.JTI.IsNil())
	})

	t.Run("success: issued tokens have distinct jtis", func(t *testing.T) {
		usecase := NewTokenIssuanceUsecase(conf, fakeDB{}, newFakeRefreshTokenRepo())

		pair, err := usecase.Issue(t.Context(), testPrincipal())
		require.NoError(t, err)

		accessParsed, err := conf.Signer.VerifyAndParse(pair.AccessToken)
		require.NoError(t, err)
		refreshParsed, err := conf.Signer.VerifyAndParse(pair.RefreshToken)
		require.NoError(t, err)

		assert.NotEqual(t, accessParsed["jti"], refreshParsed["jti"])
	})

	t.Run("success: reissue supersedes the previous token", func(t *testing.T) {
		repo := newFakeRefreshTokenRepo()
		usecase := NewTokenIssuanceUsecase(conf, fakeDB{}, repo)

		first, err := usecase.Issue(t.Context(), testPrincipal())
		require.NoError(t, err)
		second, err := usecase.Issue(t.Context(), testPrincipal())
		require.NoError(t, err)

		stored := repo.stored(t, 10)
		assert.Equal(t, domain.HashRefreshToken(second.RefreshToken), stored.TokenHash)
		assert.NotEqual(t, domain.HashRefreshToken(first.RefreshToken), stored.TokenHash)
	})

	t.Run("error: unauthenticated principal", func(t *testing.T) {
		usecase := NewTokenIssuanceUsecase(conf, fakeDB{}, newFakeRefreshTokenRepo())

		_, err := usecase.Issue(t.Context(), user.Principal{})
		assert.True(t, domain.IsValidationError(err))
	})

	t.Run("error: save failure withholds the pair", func(t *testing.T) {
		repo := newFakeRefreshTokenRepo()
		repo.upsertErr = errors.New("db down")
		usecase := NewTokenIssuanceUsecase(conf, fakeDB{}, repo)

		pair, err := usecase.Issue(t.Context(), testPrincipal())
		require.Error(t, err)
		assert.Empty(t, pair.AccessToken)
		assert.Empty(t, pair.RefreshToken)
	})
}

func TestTokenIssuanceUsecase_IssueWithin(t *testing.T) {
	conf := newTestAuthConfig()
	repo := newFakeRefreshTokenRepo()
	usecase := NewTokenIssuanceUsecase(conf, fakeDB{}, repo)

	now := time.Now()
	pair, err := usecase.IssueWithin(t.Context(), nil, testPrincipal(), now)
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)

	stored := repo.stored(t, 10)
	assert.Equal(t, now.Add(conf.RefreshTokenExpireDuration).Unix(), stored.ExpiresAt.Unix())
}
