// Package grpc is the gRPC boundary of the server. The AuthService is
// registered from a hand-written service descriptor whose messages are
// google.protobuf.Struct values, so no generated stubs are needed.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	Signup(ctx context.Context, req services.SignupRequest) (models.UserID, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*models.User, error)
}

type GRPCServer struct {
	address string
	users   UserService
	gate    Authenticator
	logger  logging.Logger
}

func NewGRPCServer(address string, l logging.Logger, us UserService, g Authenticator) *GRPCServer {
	return &GRPCServer{
		address: address,
		users:   us,
		gate:    g,
		logger:  l.With("module", "grpc_server"),
	}
}

// NewServer returns a grpc.Server with the interceptors and the AuthService
// registered.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.recoveryInterceptor,
		s.authInterceptor,
	))
	RegisterAuthServiceServer(srv, s)
	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.NewServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	<-stopped
	return nil
}
