package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies the stateless bearer tokens used by
// the API. Tokens carry the subject username and an expiry; nothing is
// persisted.
type TokenService interface {
	Issue(subject string) (string, error)
	Subject(tokenString string) (string, error)
}

type TokenServiceImpl struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenServiceImpl {
	return &TokenServiceImpl{secret: []byte(secret), ttl: ttl}
}

func (s *TokenServiceImpl) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Subject parses and verifies a token string and returns the encoded
// subject. Signature, signing method, and expiry failures all collapse
// into ErrInvalidToken.
func (s *TokenServiceImpl) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
