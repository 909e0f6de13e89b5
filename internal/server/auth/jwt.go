package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/authd/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies signed, time-limited bearer tokens.
// Tokens are self-contained: subject and expiry travel inside the signed
// payload, so verification needs no lookup.
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration

	// now is a seam for expiry tests.
	now func() time.Time
}

// NewTokenService builds a TokenService for the named HMAC algorithm
// (HS256, HS384 or HS512). The secret and algorithm are process-wide;
// rotating either invalidates all previously issued tokens.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token asserting the given subject, expiring after the
// configured TTL.
func (s *TokenService) Issue(subject string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
	}

	token := jwt.NewWithClaims(s.method, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks the signature, expiry and subject claim, and returns the
// subject. Every failure collapses to common.ErrInvalidToken so callers
// cannot tell which check rejected the token.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
