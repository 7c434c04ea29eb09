// Package gate authenticates inbound requests: it takes the raw
// authorization header, verifies the bearer token and resolves the user the
// token was issued to. Every failure after the header check collapses into
// common.ErrInvalidToken so callers cannot tell expired, forged and orphaned
// tokens apart.
package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*auth.Claims, error)
}

type UserFinder interface {
	GetUserByID(ctx context.Context, id models.UserID) (*models.User, error)
}

type Gate struct {
	tokens TokenVerifier
	users  UserFinder
	logger logging.Logger
}

func New(tokens TokenVerifier, users UserFinder, logger logging.Logger) *Gate {
	return &Gate{tokens: tokens, users: users, logger: logger.With("module", "gate")}
}

// ExtractBearerToken returns the token carried by an "Authorization: Bearer"
// header value. ok is false when the header is absent or uses another scheme.
func ExtractBearerToken(header string) (token string, ok bool) {
	if !strings.HasPrefix(header, common.BearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(common.BearerPrefix):]), true
}

// Authenticate returns the user the bearer token in header belongs to.
// It fails with common.ErrTokenMissing when there is no bearer header and
// with common.ErrInvalidToken for anything else.
func (g *Gate) Authenticate(ctx context.Context, header string) (user *models.User, err error) {
	token, ok := ExtractBearerToken(header)
	if !ok {
		return nil, common.ErrTokenMissing
	}
	if token == "" {
		return nil, common.ErrInvalidToken
	}

	defer func() {
		if r := recover(); r != nil {
			g.logger.Error(ctx, "panic while authenticating", "panic", fmt.Sprint(r))
			user, err = nil, common.ErrInvalidToken
		}
	}()

	claims, err := g.tokens.Verify(ctx, token)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err = g.users.GetUserByID(ctx, claims.UserID())
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			g.logger.Info(ctx, "token subject has no account", "user_id", claims.UserID().String())
		case errors.Is(err, common.ErrorMalformedID):
			g.logger.Info(ctx, "token subject is not a valid id", "user_id", claims.UserID().String())
		default:
			g.logger.Error(ctx, "user lookup failed", "error", err)
		}
		return nil, common.ErrInvalidToken
	}

	return user, nil
}

type ctxKey struct{}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, user)
}

// UserFromContext returns the user stored by WithUser.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*models.User)
	return u, ok && u != nil
}
