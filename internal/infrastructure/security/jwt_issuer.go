package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/usersapp/accounts-api/internal/core/domain"
	"github.com/usersapp/accounts-api/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// ErrInvalidToken is returned for any token that fails parsing or claim checks.
var ErrInvalidToken = errors.New("invalid token")

// JWTConfig holds the signing and validation settings for access tokens.
type JWTConfig struct {
	Secret    string
	Issuer    string
	Audience  string
	TTL       time.Duration
	ClockSkew time.Duration
}

type accessClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 access tokens and validates them on the way back in.
type JWTIssuer struct {
	cfg JWTConfig
	now func() time.Time
}

func NewJWTIssuer(cfg JWTConfig) *JWTIssuer {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTokenTTL
	}
	if cfg.ClockSkew < 0 {
		cfg.ClockSkew = 0
	}
	return &JWTIssuer{cfg: cfg, now: time.Now}
}

// Issue mints a token carrying the user's id (sub), email and name.
func (i *JWTIssuer) Issue(user *domain.User) (string, time.Duration, error) {
	now := i.now()
	claims := accessClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    i.cfg.Issuer,
			Audience:  jwt.ClaimStrings{i.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("sign token: %w", err)
	}
	return signed, i.cfg.TTL, nil
}

// Validate checks signature, issuer, audience and expiry (with the configured
// clock-skew leeway) and returns the identity claims.
func (i *JWTIssuer) Validate(token string) (*ports.TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(i.cfg.ClockSkew),
		jwt.WithTimeFunc(i.now),
	}
	if i.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.cfg.Issuer))
	}
	if i.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(i.cfg.Audience))
	}

	claims := &accessClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(i.cfg.Secret), nil
	}, opts...)
	if err != nil || !tkn.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return &ports.TokenClaims{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
	}, nil
}
