package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrSigning      = errors.New("token signing failed")
)

const bearerPrefix = "Bearer "

// SessionClaim is the identity asserted by a bearer token.
type SessionClaim struct {
	Subject string
}

// Claims is the wire form of a SessionClaim; the subject travels as "user".
type Claims struct {
	User string `json:"user"`
	jwt.RegisteredClaims
}

// JWTManager issues and verifies HS256 bearer tokens with a single shared secret
type JWTManager struct {
	Secret []byte
	TTL    time.Duration
	now    func() time.Time
}

// NewJWTManager builds a manager from explicit configuration. A zero ttl issues
// tokens without an exp claim.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	return &JWTManager{Secret: []byte(secret), TTL: ttl, now: time.Now}
}

// Issue signs the claim. expiresAt is zero when the manager has no TTL.
func (m *JWTManager) Issue(claim SessionClaim) (string, time.Time, error) {
	now := m.now()
	claims := &Claims{
		User: claim.Subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	var exp time.Time
	if m.TTL > 0 {
		exp = now.Add(m.TTL)
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return s, exp, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded claim
func (m *JWTManager) Verify(tokenStr string) (*SessionClaim, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.User == "" {
		return nil, ErrInvalidToken
	}
	return &SessionClaim{Subject: claims.User}, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value
func BearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", ErrMissingToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}
