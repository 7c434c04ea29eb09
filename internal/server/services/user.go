// Package services contains the server-side business logic shared by the
// HTTP and gRPC boundaries. UserService registers accounts and exchanges
// credentials for bearer tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
)

type TokenIssuer interface {
	Issue(claims auth.Claims) (string, error)
}

type SignupRequest struct {
	Name     string
	Email    string
	Gender   string
	Password string
}

type UserService struct {
	users  users.Repository
	hasher cryptox.PasswordHasher
	tokens TokenIssuer
	logger logging.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash []byte
}

type Option func(*UserService)

func WithClock(now func() time.Time) Option {
	return func(s *UserService) { s.now = now }
}

func NewUserService(repo users.Repository, hasher cryptox.PasswordHasher, tokens TokenIssuer, logger logging.Logger, opts ...Option) *UserService {
	s := &UserService{
		users:  repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("module", "user_service"),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Signup stores a new account and returns its id. It fails with
// common.ErrorAlreadyExists when the email is taken, including when a
// concurrent signup wins the race at the store.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (models.UserID, error) {
	_, err := s.users.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return "", common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, cryptox.ErrEmptySecret) || errors.Is(err, cryptox.ErrSecretTooLong) {
			return "", fmt.Errorf("%w: %w", common.ErrorValidation, err)
		}
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return "", common.ErrorInternal
	}

	u, err := s.users.Create(ctx, &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Gender:       req.Gender,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrorAlreadyExists
		}
		s.logger.Error(ctx, "user insert failed", "error", err)
		return "", common.ErrorInternal
	}

	s.logger.Info(ctx, "user signed up", "user_id", u.ID.String())
	return u.ID, nil
}

// Login checks the credentials and returns a signed token for the account.
// Unknown email and wrong password both yield common.ErrorUnauthorized, and
// both run one hash verification.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummy())
			return "", common.ErrorUnauthorized
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return "", common.ErrorInternal
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(auth.NewUserClaims(u))
	if err != nil {
		s.logger.Error(ctx, "token signing failed", "error", err)
		return "", common.ErrorInternal
	}
	return token, nil
}

// dummy returns a hash of a random secret nobody knows, used to spend the
// same verification work on unknown emails as on real ones.
func (s *UserService) dummy() []byte {
	s.dummyOnce.Do(func() {
		secret, err := common.MakeRandHexString(16)
		if err != nil {
			return
		}
		s.dummyHash, _ = s.hasher.Hash(secret)
	})
	return s.dummyHash
}
