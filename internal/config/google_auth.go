package config

type GoogleAuthConfig struct {
	Enabled       bool
	ClientID      string
	ClientSecret  string
	RedirectURL   string
	ResultPageURL string
	DefaultRole   string
}

func NewGoogleAuthConfigFromEnv() (GoogleAuthConfig, error) {
	enabled, err := getBoolFromEnv("AUTH_SERVICE_GOOGLE_AUTH_ENABLED", false)
	if err != nil {
		return GoogleAuthConfig{}, err
	}

	if !enabled {
		return GoogleAuthConfig{Enabled: false}, nil
	}

	clientID, err := getRequiredString("AUTH_SERVICE_GOOGLE_CLIENT_ID")
	if err != nil {
		return GoogleAuthConfig{}, err
	}

	clientSecret, err := getRequiredString("AUTH_SERVICE_GOOGLE_CLIENT_SECRET")
	if err != nil {
		return GoogleAuthConfig{}, err
	}

	redirectURL, err := getRequiredString("AUTH_SERVICE_GOOGLE_REDIRECT_URL")
	if err != nil {
		return GoogleAuthConfig{}, err
	}

	resultPageURL, err := getRequiredString("AUTH_SERVICE_LOGIN_RESULT_PAGE_URL")
	if err != nil {
		return GoogleAuthConfig{}, err
	}

	return GoogleAuthConfig{
		Enabled:       true,
		ClientID:      clientID,
		ClientSecret:  clientSecret,
		RedirectURL:   redirectURL,
		ResultPageURL: resultPageURL,
		DefaultRole:   getOptionalString("AUTH_SERVICE_DEFAULT_ROLE"),
	}, nil
}
