package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// SessionTTL is the expiry for HTTP session tokens. Expiry requires
// re-authentication; there is no refresh or rotation.
const SessionTTL = 7 * 24 * time.Hour

// ErrInvalidToken covers tampered, expired and malformed tokens alike.
var ErrInvalidToken = errors.New("invalid token")

// Claims are custom claims extending standard jwt.RegisteredClaims
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed identity tokens. Both the HTTP
// middleware and the realtime channel handshake verify through the same
// service.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service signing with the given secret. Session
// tokens expire after ttl (7 days for HTTP sessions).
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given user id and role.
func (s *Service) Issue(userID uint, role string) (string, error) {
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify validates signature and expiry and returns the embedded claims.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
