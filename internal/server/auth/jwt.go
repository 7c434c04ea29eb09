// Package auth issues and verifies the signed bearer tokens handed out at
// login.
//
// Tokens are HS256 JWTs signed with a single process-wide key. They carry
// the user's id as subject plus name and email, and expire
// TokenValidityDuration after issuance. There is no server-side session
// state and no revocation: a token is valid until it expires or the key
// changes.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// TokenValidityDuration is the lifetime of every issued token.
const TokenValidityDuration = 2 * time.Hour

var ErrMissingSecretKey = errors.New("jwt secret key is not set")

// Claims is the payload of an access token. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserID returns the subject as a typed user id.
func (c *Claims) UserID() models.UserID {
	return models.UserID(c.Subject)
}

// NewUserClaims builds the claims issued for u at login.
func NewUserClaims(u *models.User) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: u.ID.String()},
		Name:             u.Name,
		Email:            u.Email,
	}
}

// TokenManager signs and verifies access tokens. It is immutable after
// construction and safe for concurrent use.
type TokenManager struct {
	secretKey []byte
	validity  time.Duration
	now       func() time.Time
	logger    logging.Logger
}

type Option func(*TokenManager)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *TokenManager) { m.now = now }
}

func WithLogger(l logging.Logger) Option {
	return func(m *TokenManager) { m.logger = l }
}

// NewTokenManager returns ErrMissingSecretKey for an empty key so that a
// misconfigured server refuses to start instead of signing with nothing.
func NewTokenManager(secretKey []byte, opts ...Option) (*TokenManager, error) {
	if len(secretKey) == 0 {
		return nil, ErrMissingSecretKey
	}

	m := &TokenManager{
		secretKey: append([]byte(nil), secretKey...),
		validity:  TokenValidityDuration,
		now:       time.Now,
		logger:    logging.NewDiscardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Issue signs a copy of claims with the expiry and issued-at times set.
func (m *TokenManager) Issue(claims Claims) (string, error) {
	now := m.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.validity))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify returns the claims of a well-formed, correctly signed, unexpired
// token. Every failure is reported as common.ErrInvalidToken; the actual
// reason only goes to the debug log.
func (m *TokenManager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		m.logger.Debug(ctx, "token rejected", "reason", rejectReason(err))
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		m.logger.Debug(ctx, "token rejected", "reason", "invalid")
		return nil, common.ErrInvalidToken
	}

	if claims.Subject == "" {
		m.logger.Debug(ctx, "token rejected", "reason", "no subject")
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return "missing claim"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	default:
		return "invalid"
	}
}
