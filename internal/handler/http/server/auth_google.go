package server

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Siroshun09/go-httplib"
	"github.com/Siroshun09/logs"
	"github.com/famtree-app/auth-service/internal/config"
	"github.com/famtree-app/auth-service/internal/domain"
	"github.com/famtree-app/auth-service/internal/repositories"
	"github.com/famtree-app/auth-service/internal/usecases"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type googleAuthHandler struct {
	enabled         bool
	resultPageURL   string
	defaultRole     string
	conf            oauth2.Config
	authConfig      config.AuthConfig
	issuanceUsecase usecases.TokenIssuanceUsecase
	userUsecase     usecases.UserUsecase
	auditUsecase    usecases.SecurityAuditUsecase
}

func newGoogleAuthHandler(
	c config.GoogleAuthConfig,
	authConfig config.AuthConfig,
	issuanceUsecase usecases.TokenIssuanceUsecase,
	userUsecase usecases.UserUsecase,
	auditUsecase usecases.SecurityAuditUsecase,
) googleAuthHandler {
	return googleAuthHandler{
		enabled:       c.Enabled,
		resultPageURL: c.ResultPageURL,
		defaultRole:   c.DefaultRole,
		conf: oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		authConfig:      authConfig,
		issuanceUsecase: issuanceUsecase,
		userUsecase:     userUsecase,
		auditUsecase:    auditUsecase,
	}
}

func (h googleAuthHandler) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.enabled {
		httplib.RenderBadRequest(ctx, w, nil)
		return
	}

	req, err := httplib.DecodeJSONRequestBody[GoogleLoginRequest](r)
	if err != nil {
		httplib.RenderBadRequest(ctx, w, err)
		return
	}

	state, err := generateRandomToken()
	if err != nil {
		httplib.RenderInternalServerError(ctx, w, err)
		return
	}

	verifier := oauth2.GenerateVerifier()
	setLoginStateCookies(w, state, verifier, req.CurrentUrl)

	redirectURL := h.conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))
	res, err := httplib.JSONResponse(GoogleLoginResponse{RedirectUrl: redirectURL})
	if err != nil {
		httplib.RenderInternalServerError(ctx, w, err)
		return
	}

	err = httplib.RenderOKWithBody(ctx, w, res)
	if err != nil {
		logs.Error(ctx, err)
	}
}

func (h googleAuthHandler) CallbackFromGoogle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.enabled {
		h.redirectToResultPage(ctx, w, r, GoogleLoginResultNotEnabled, "")
		return
	}

	redirectTo := readLoginRedirectTo(r)
	unsetLoginStateCookies(w)

	stateCookie, err := r.Cookie("login_state")
	if err != nil {
		h.handleAuthenticationFailure(ctx, w, r, "login state cookie missing")
		return
	}

	state := r.URL.Query().Get("state")
	if subtle.ConstantTimeCompare([]byte(state), []byte(stateCookie.Value)) != 1 {
		h.handleAuthenticationFailure(ctx, w, r, "login state mismatch")
		return
	}

	verifierCookie, err := r.Cookie("login_verifier")
	if err != nil {
		h.handleAuthenticationFailure(ctx, w, r, "login verifier cookie missing")
		return
	}

	code := r.URL.Query().Get("code")
	oauthToken, err := h.conf.Exchange(ctx, code, oauth2.VerifierOption(verifierCookie.Value))
	if err != nil {
		h.handleAuthenticationFailure(ctx, w, r, "authorization code exchange failed")
		return
	}

	sub, err := subFromIDToken(oauthToken)
	if err != nil {
		h.handleAuthenticationFailure(ctx, w, r, "id token missing or malformed")
		return
	}

	principal, err := h.userUsecase.GetPrincipalBySub(ctx, sub)
	if errors.Is(err, repositories.UserNotFoundBySubError) {
		h.redirectToResultPage(ctx, w, r, GoogleLoginResultUserNotFound, "")
		return
	} else if err != nil {
		logs.Error(ctx, err)
		h.redirectToResultPage(ctx, w, r, GoogleLoginResultInternalError, "")
		return
	}

	if principal.Role == "" {
		principal.Role = h.defaultRole
	}

	pair, err := h.issuanceUsecase.Issue(ctx, principal)
	if err != nil {
		logs.Error(ctx, err)
		h.redirectToResultPage(ctx, w, r, GoogleLoginResultInternalError, "")
		return
	}

	csrfToken, err := generateRandomToken()
	if err != nil {
		logs.Error(ctx, err)
		h.redirectToResultPage(ctx, w, r, GoogleLoginResultInternalError, "")
		return
	}

	setRefreshTokenCookie(w, pair.RefreshToken, csrfToken, time.Now().Add(h.authConfig.RefreshTokenExpireDuration))
	h.redirectToResultPage(ctx, w, r, GoogleLoginResultSuccess, redirectTo)
}

func (h googleAuthHandler) handleAuthenticationFailure(ctx context.Context, w http.ResponseWriter, r *http.Request, reason string) {
	log := httplib.GetRequestLogFromContext(ctx)
	_, err := h.auditUsecase.LogEvent(ctx, usecases.SecurityEventParams{
		EventType:   domain.SecurityEventAuthenticationFailure,
		IPAddress:   log.GetIP().String(),
		UserAgent:   domain.TruncateUserAgent(log.UserAgent),
		Description: "google login failed: " + reason,
	})
	if err != nil {
		logs.Warn(ctx, err)
	}

	h.redirectToResultPage(ctx, w, r, GoogleLoginResultInvalidToken, "")
}

func (h googleAuthHandler) redirectToResultPage(ctx context.Context, w http.ResponseWriter, r *http.Request, result GoogleLoginResult, redirectTo string) {
	redirect := h.resultPageURL + "?type=" + string(result)
	if redirectTo != "" {
		redirect += "&redirectTo=" + url.PathEscape(redirectTo)
	}
	httplib.RenderRedirect(ctx, w, r, redirect)
}

func subFromIDToken(oauthToken *oauth2.Token) (string, error) {
	idToken, ok := oauthToken.Extra("id_token").(string)
	if !ok {
		return "", errors.New("id_token is not present")
	}

	parts := strings.Split(idToken, ".")
	if len(parts) != 3 {
		return "", errors.New("id_token is not a JWT")
	}

	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return "", err
	}

	var claims map[string]interface{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", err
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("sub claim is not present")
	}

	return sub, nil
}
