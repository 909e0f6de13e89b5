package models

import "github.com/dmitrijs2005/authd/internal/common"

// Token is the response body returned on successful registration or login.
// Tokens are stateless; nothing is persisted.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewBearerToken wraps an access token string in the standard envelope.
func NewBearerToken(accessToken string) *Token {
	return &Token{AccessToken: accessToken, TokenType: common.TokenTypeBearer}
}
