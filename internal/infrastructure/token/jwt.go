package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/eventrsvp/rsvp-api/internal/core/domain"
)

// ErrExpired is returned by Verify for well-formed tokens past their expiry.
// It wraps domain.ErrInvalidToken.
var ErrExpired = fmt.Errorf("%w: expired", domain.ErrInvalidToken)

type accountClaims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 bearer tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token identifying accountID.
func (s *Signer) Sign(accountID string) (string, error) {
	now := s.now()
	claims := accountClaims{
		UserID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry of raw and returns its claims.
func (s *Signer) Verify(raw string) (domain.Claims, error) {
	var claims accountClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Claims{}, ErrExpired
		}
		return domain.Claims{}, domain.ErrInvalidToken
	}
	if claims.UserID == "" {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return domain.Claims{UserID: claims.UserID, ExpiresAt: claims.ExpiresAt.Time}, nil
}
