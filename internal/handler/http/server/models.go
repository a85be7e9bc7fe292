package server

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type GoogleLoginRequest struct {
	CurrentUrl string `json:"currentUrl"`
}

type GoogleLoginResponse struct {
	RedirectUrl string `json:"redirectUrl"`
}

type GoogleLoginResult string

const (
	GoogleLoginResultSuccess       GoogleLoginResult = "success"
	GoogleLoginResultNotEnabled    GoogleLoginResult = "not_enabled"
	GoogleLoginResultInvalidToken  GoogleLoginResult = "invalid_token"
	GoogleLoginResultUserNotFound  GoogleLoginResult = "user_not_found"
	GoogleLoginResultInternalError GoogleLoginResult = "internal_error"
)
