package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/gate"
	gs "github.com/dmitrijs2005/authkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func newTestClient(t *testing.T) *GRPCClient {
	t.Helper()

	logger := logging.NewDiscardLogger()
	repo := users.NewMemoryRepository()
	tokens, err := auth.NewTokenManager([]byte("client-test-secret"))
	require.NoError(t, err)
	svc := services.NewUserService(repo, cryptox.NewBcryptHasher(bcrypt.MinCost), tokens, logger)
	srv := gs.NewGRPCServer("", logger, svc, gate.New(tokens, repo, logger))

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	c, err := NewGRPCClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
		cancel()
		<-done
	})
	return c
}

func TestClient_SignupLoginMe(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))

	id, err := c.Signup(ctx, SignupInput{Name: "Ana", Email: "ana@x.com", Gender: "f", Password: "pw1"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	_, err = c.Signup(ctx, SignupInput{Name: "Ana", Email: "ana@x.com", Gender: "f", Password: "pw1"})
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorContains(t, err, "Email already exists")

	_, err = c.Login(ctx, "ana@x.com", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	token, err := c.Login(ctx, "ana@x.com", "pw1")
	require.NoError(t, err)

	p, err := c.Me(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, &Profile{Name: "Ana", Email: "ana@x.com", Gender: "f"}, p)

	_, err = c.Me(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = c.Login(ctx, "not-an-email", "pw1")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestClient_Unavailable(t *testing.T) {
	c, err := NewGRPCClient("passthrough:///nowhere",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) {
			return nil, errors.New("refused")
		}),
	)
	require.NoError(t, err)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = c.Ping(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestMapError(t *testing.T) {
	plain := errors.New("plain")
	assert.Equal(t, plain, mapError(plain))

	err := mapError(status.Error(codes.Internal, "Internal server error"))
	assert.EqualError(t, err, "server error: Internal server error")
}
