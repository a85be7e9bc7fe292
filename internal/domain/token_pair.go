package domain

// TokenPair is the transient result of issuance or rotation. It is handed to
// the caller once and never persisted.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    int64
}

const TokenTypeBearer = "Bearer"
