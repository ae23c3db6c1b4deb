package auth

import (
	"errors"
	"fmt"
	"time"

	"bookstore-be/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued identity token stays valid.
const TokenLifetime = 45 * time.Minute

var (
	ErrTokenExpired      = fmt.Errorf("%w: token expired", apperror.ErrForbidden)
	ErrTokenMalformed    = fmt.Errorf("%w: token malformed", apperror.ErrForbidden)
	ErrTokenBadSignature = fmt.Errorf("%w: token signature invalid", apperror.ErrForbidden)
	ErrTokenInvalid      = fmt.Errorf("%w: token invalid", apperror.ErrForbidden)

	ErrEmptySecret = errors.New("token signing secret is empty")
)

type Claims struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenIssuer is the half of the token service the credential store needs.
type TokenIssuer interface {
	Issue(id Identity) (string, error)
}

type TokenVerifier interface {
	Verify(token string) (Identity, error)
}

type TokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

type Option func(*TokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(secret string, opts ...Option) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	s := &TokenService{
		secret:   []byte(secret),
		lifetime: TokenLifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TokenService) Issue(id Identity) (string, error) {
	if id.ID == "" {
		return "", errors.New("identity id is required")
	}
	role := id.Role
	if role == "" {
		role = RoleUser
	}

	now := s.now()
	claims := Claims{
		ID:   id.ID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) Verify(tokenStr string) (Identity, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return Identity{}, ErrTokenInvalid
	}

	role := claims.Role
	if !role.Valid() {
		role = RoleUser
	}
	return Identity{ID: claims.ID, Role: role}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenBadSignature
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}

// Reason names a verification failure for logs and metrics.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, ErrTokenBadSignature):
		return "bad_signature"
	default:
		return "invalid"
	}
}
