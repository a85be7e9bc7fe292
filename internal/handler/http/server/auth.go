package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Siroshun09/go-httplib"
	"github.com/Siroshun09/logs"
	"github.com/famtree-app/auth-service/api/token"
	"github.com/famtree-app/auth-service/internal/config"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/usecases"
	"github.com/golang-jwt/jwt/v5"
)

type authHandler struct {
	authConfig         config.AuthConfig
	rateLimitConfig    config.RateLimitConfig
	rotationUsecase    usecases.TokenRotationUsecase
	terminationUsecase usecases.SessionTerminationUsecase
	rateLimitUsecase   usecases.RateLimitUsecase
	auditUsecase       usecases.SecurityAuditUsecase
}

func newAuthHandler(
	authConfig config.AuthConfig,
	rateLimitConfig config.RateLimitConfig,
	rotationUsecase usecases.TokenRotationUsecase,
	terminationUsecase usecases.SessionTerminationUsecase,
	rateLimitUsecase usecases.RateLimitUsecase,
	auditUsecase usecases.SecurityAuditUsecase,
) authHandler {
	return authHandler{
		authConfig:         authConfig,
		rateLimitConfig:    rateLimitConfig,
		rotationUsecase:    rotationUsecase,
		terminationUsecase: terminationUsecase,
		rateLimitUsecase:   rateLimitUsecase,
		auditUsecase:       auditUsecase,
	}
}

func (h authHandler) RefreshAccessToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	log := httplib.GetRequestLogFromContext(ctx)
	ip := log.GetIP().String()
	userAgent := domain.TruncateUserAgent(log.UserAgent)

	result, err := h.rateLimitUsecase.Check(ctx, usecases.CheckRateLimitParams{
		Key:                 "token_refresh:" + ip,
		IPAddress:           ip,
		LimitCount:          h.rateLimitConfig.RefreshLimitCount,
		WindowSizeInSeconds: int64(h.rateLimitConfig.RefreshWindowSize / time.Second),
	})
	if err != nil {
		httplib.RenderInternalServerError(ctx, w, err)
		return
	}
	if !result.Allowed {
		h.logSecurityEvent(ctx, usecases.SecurityEventParams{
			EventType:   domain.SecurityEventRateLimitExceeded,
			IPAddress:   ip,
			UserAgent:   userAgent,
			Description: fmt.Sprintf("token refresh rate limit exceeded (%d attempts in window)", result.CurrentCount),
		})
		w.WriteHeader(http.StatusTooManyRequests)
		return
	}

	if err := checkCSRFToken(r); err != nil {
		httplib.RenderUnauthorized(ctx, w, err)
		return
	}

	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		httplib.RenderUnauthorized(ctx, w, err)
		return
	}

	pair, err := h.rotationUsecase.Rotate(ctx, cookie.Value)
	if domain.IsUnauthorizedError(err) {
		h.logSecurityEvent(ctx, rotationFailureEvent(err, ip, userAgent))
		unsetRefreshTokenCookie(w)
		httplib.RenderUnauthorized(ctx, w, err)
		return
	} else if domain.IsValidationError(err) {
		httplib.RenderBadRequest(ctx, w, err)
		return
	} else if err != nil {
		httplib.RenderInternalServerError(ctx, w, err)
		return
	}

	csrfToken, err := generateRandomToken()
	if err != nil {
		httplib.RenderInternalServerError(ctx, w, err)
		return
	}

	setRefreshTokenCookie(w, pair.RefreshToken, csrfToken, time.Now().Add(h.authConfig.RefreshTokenExpireDuration))

	res, err := httplib.JSONResponse(AccessTokenResponse{
		AccessToken: pair.AccessToken,
		TokenType:   pair.TokenType,
		ExpiresIn:   pair.ExpiresIn,
	})
	if err != nil {
		httplib.RenderInternalServerError(ctx, w, err)
		return
	}

	err = httplib.RenderOKWithBody(ctx, w, res)
	if err != nil {
		logs.Error(ctx, err)
	}
}

func (h authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := checkCSRFToken(r); err != nil {
		httplib.RenderNoContentForUnauthorized(ctx, w, err)
		return
	}

	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		httplib.RenderNoContentForUnauthorized(ctx, w, err)
		return
	}

	unsetRefreshTokenCookie(w)

	refreshClaims, err := h.verifyRefreshToken(cookie.Value)
	if err != nil {
		httplib.RenderNoContentForUnauthorized(ctx, w, err) // already logged out
		return
	}

	log := httplib.GetRequestLogFromContext(ctx)
	err = h.terminationUsecase.Logout(ctx, refreshClaims.UserID, domain.ClientInfo{
		IPAddress: log.GetIP().String(),
		UserAgent: domain.TruncateUserAgent(log.UserAgent),
	})
	if err != nil {
		httplib.RenderInternalServerError(ctx, w, err)
		return
	}

	httplib.RenderNoContent(ctx, w)
}

func (h authHandler) verifyRefreshToken(tokenString string) (token.RefreshTokenClaims, error) {
	claims, err := h.authConfig.Signer.VerifyAndParse(tokenString)
	if err != nil {
		return token.RefreshTokenClaims{}, domain.NewUnauthorizedError(err)
	}

	refreshClaims, err := token.ReadRefreshTokenClaimsFrom(claims)
	if err != nil {
		return token.RefreshTokenClaims{}, domain.NewUnauthorizedError(err)
	}

	if err := refreshClaims.Validate(time.Now()); err != nil {
		return token.RefreshTokenClaims{}, domain.NewUnauthorizedError(err)
	}

	return refreshClaims, nil
}

func (h authHandler) logSecurityEvent(ctx context.Context, params usecases.SecurityEventParams) {
	if _, err := h.auditUsecase.LogEvent(ctx, params); err != nil {
		logs.Warn(ctx, err)
	}
}

// rotationFailureEvent classifies a rotation failure for the audit trail.
// The client always sees a uniform unauthorized response; only the audit log
// distinguishes expired, reused, and malformed tokens.
func rotationFailureEvent(err error, ip string, userAgent string) usecases.SecurityEventParams {
	params := usecases.SecurityEventParams{
		EventType:   domain.SecurityEventInvalidTokenAttempt,
		IPAddress:   ip,
		UserAgent:   userAgent,
		Description: "refresh token rejected",
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		params.EventType = domain.SecurityEventTokenExpired
		params.Description = "expired refresh token presented"
	case errors.Is(err, domain.RefreshTokenNotFoundError):
		// Valid signature but no matching stored token: rotated or revoked
		// already, so likely a replay.
		params.EventType = domain.SecurityEventSuspiciousAccess
		params.Description = "refresh token reuse detected"
	}

	return params
}
