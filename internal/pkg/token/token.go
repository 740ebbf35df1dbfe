// Package token issues and verifies the bearer tokens that carry an agent's
// identity between requests.
//
// Tokens are compact JWS (header.claims.signature) signed with a shared HMAC
// secret. Claims: sub (agent id, decimal), exp, iat and jti. Nothing is stored
// server-side, so rotating the secret invalidates every outstanding token.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is used when Issue is called with a non-positive ttl.
const DefaultTTL = 30 * time.Minute

var (
	// ErrInvalidToken is returned by Verify for every rejected token: malformed,
	// bad signature, wrong algorithm, expired, or missing subject.
	ErrInvalidToken = errors.New("invalid token")
	// ErrEmptySecret is returned by NewJWTIssuer for an empty signing secret.
	ErrEmptySecret = errors.New("token signing secret is empty")
	// ErrUnsupportedAlgorithm is returned by NewJWTIssuer for anything but HS256, HS384 or HS512.
	ErrUnsupportedAlgorithm = errors.New("unsupported token signing algorithm")
)

var supportedMethods = map[string]*jwt.SigningMethodHMAC{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

// Issuer issues tokens for an agent id.
type Issuer interface {
	Issue(agentID int64, ttl time.Duration) (string, error)
}

// Verifier recovers the agent id from a token.
type Verifier interface {
	Verify(tokenString string) (int64, error)
}

// Option configures a JWTIssuer.
type Option func(*JWTIssuer)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(i *JWTIssuer) {
		i.now = now
	}
}

// WithDefaultTTL overrides DefaultTTL.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(i *JWTIssuer) {
		if ttl > 0 {
			i.defaultTTL = ttl
		}
	}
}

// JWTIssuer implements Issuer and Verifier with github.com/golang-jwt/jwt/v5.
//
// Example:
//
//	issuer, err := token.NewJWTIssuer([]byte(secret), "HS256")
//	if err != nil {
//	    return err
//	}
//	signed, _ := issuer.Issue(7, 0) // 30 minutes
//	agentID, err := issuer.Verify(signed)
type JWTIssuer struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
	now        func() time.Time
}

// NewJWTIssuer validates the secret and algorithm name ("HS256", "HS384", "HS512").
func NewJWTIssuer(secret []byte, algorithm string, opts ...Option) (*JWTIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	method, ok := supportedMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, algorithm)
	}

	i := &JWTIssuer{
		secret:     secret,
		method:     method,
		defaultTTL: DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}

	return i, nil
}

// Issue signs a token for agentID expiring at now + ttl.
// Timestamps have one-second precision.
func (i *JWTIssuer) Issue(agentID int64, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = i.defaultTTL
	}

	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(agentID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks algorithm, signature and expiry and returns the subject.
// A token is rejected at its expiry instant, not only after it.
func (i *JWTIssuer) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
		jwt.WithStrictDecoding(),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return 0, ErrInvalidToken
	}

	agentID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || agentID <= 0 {
		return 0, fmt.Errorf("%w: subject %q is not an agent id", ErrInvalidToken, claims.Subject)
	}

	return agentID, nil
}
