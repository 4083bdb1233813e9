package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultTokenTTL = 30 * time.Minute

	tokenIssuer   = "cheerup"
	tokenAudience = "cheerup-api"
)

var (
	errMissingSigningSecret = errors.New("signing secret must be provided")
	errMissingSubjectClaim  = errors.New("subject claim must be provided")
)

// ServiceTokensConfig configures the HS256 service-token issuer shared by
// the bots and the API.
type ServiceTokensConfig struct {
	SigningSecret []byte
	TokenTTL      time.Duration
	Clock         func() time.Time
}

// ServiceTokens issues and validates the bearer tokens the bots present to
// the API. With an empty signing secret the API side skips validation
// entirely; Issue then fails, so a bot misconfiguration is caught early.
type ServiceTokens struct {
	config ServiceTokensConfig
	clock  func() time.Time
}

// NewServiceTokens constructs a ServiceTokens with sane defaults.
func NewServiceTokens(cfg ServiceTokensConfig) *ServiceTokens {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &ServiceTokens{
		config: ServiceTokensConfig{
			SigningSecret: cfg.SigningSecret,
			TokenTTL:      ttl,
			Clock:         clock,
		},
		clock: clock,
	}
}

// Enabled reports whether a signing secret is configured.
func (t *ServiceTokens) Enabled() bool {
	return len(t.config.SigningSecret) > 0
}

// Issue produces a signed JWT identifying the calling service.
func (t *ServiceTokens) Issue(serviceName string) (string, error) {
	if !t.Enabled() {
		return "", errMissingSigningSecret
	}
	if serviceName == "" {
		return "", errMissingSubjectClaim
	}

	now := t.clock().UTC()
	registered := jwt.RegisteredClaims{
		Subject:   serviceName,
		Issuer:    tokenIssuer,
		Audience:  []string{tokenAudience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.config.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, registered)
	return token.SignedString(t.config.SigningSecret)
}

// Validate ensures the token is well formed and returns the service name.
func (t *ServiceTokens) Validate(tokenString string) (string, error) {
	if !t.Enabled() {
		return "", errMissingSigningSecret
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, fmt.Errorf("unexpected signing algorithm: %s", token.Method.Alg())
			}
			return t.config.SigningSecret, nil
		},
		jwt.WithAudience(tokenAudience),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(t.clock),
	)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errMissingSubjectClaim
	}
	return claims.Subject, nil
}
