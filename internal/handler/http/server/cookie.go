package server

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/Siroshun09/serrors"
	"github.com/famtree-app/auth-service/internal/domain"
)

func generateRandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", serrors.WithStackTrace(err)
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func checkCSRFToken(r *http.Request) error {
	csrfTokenCookie, err := r.Cookie("csrf_token")
	if err != nil {
		return domain.NewUnauthorizedError(serrors.New("csrf token not found"))
	}

	headerValue := r.Header.Get("X-CSRF-Token")
	if headerValue == "" || headerValue != csrfTokenCookie.Value {
		return domain.NewUnauthorizedError(serrors.New("csrf token mismatch"))
	}

	return nil
}

func setRefreshTokenCookie(w http.ResponseWriter, refreshToken string, csrfToken string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  expiresAt,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Value:    csrfToken,
		Path:     "/",
		HttpOnly: false,
		Secure:   true,
		Expires:  expiresAt,
		SameSite: http.SameSiteLaxMode,
	})
}

func unsetRefreshTokenCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "refresh_token",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "csrf_token",
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

func setLoginStateCookies(w http.ResponseWriter, state string, verifier string, redirectTo string) {
	expiresAt := time.Now().Add(15 * time.Minute)

	http.SetCookie(w, &http.Cookie{
		Name:     "login_state",
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  expiresAt,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     "login_verifier",
		Value:    verifier,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		Expires:  expiresAt,
		SameSite: http.SameSiteLaxMode,
	})

	if redirectTo != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     "login_redirect_to",
			Value:    base64.URLEncoding.EncodeToString([]byte(redirectTo)),
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			Expires:  expiresAt,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func unsetLoginStateCookies(w http.ResponseWriter) {
	for _, name := range []string{"login_state", "login_verifier", "login_redirect_to"} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Path:     "/",
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
		})
	}
}

func readLoginRedirectTo(r *http.Request) string {
	cookie, err := r.Cookie("login_redirect_to")
	if err != nil {
		return ""
	}

	decoded, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return ""
	}
	return string(decoded)
}
