// Package rest is the HTTP/JSON boundary of the server. It decodes and
// validates request bodies, drives the user service and the session gate, and
// maps their errors to status codes with {"detail": ...} bodies.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	maxBodyBytes      = 1 << 20
)

type UserService interface {
	Signup(ctx context.Context, req services.SignupRequest) (models.UserID, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*models.User, error)
}

type HTTPServer struct {
	address string
	users   UserService
	gate    Authenticator
	logger  logging.Logger
}

func NewHTTPServer(address string, l logging.Logger, us UserService, g Authenticator) *HTTPServer {
	return &HTTPServer{
		address: address,
		users:   us,
		gate:    g,
		logger:  l.With("module", "http_server"),
	}
}

// Router returns the handler serving every HTTP route.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(s.recoverer)

	r.Get("/ping", s.ping)
	r.Post("/signup", s.signup)
	r.Post("/login", s.login)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireUser)
		r.Get("/me", s.me)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeDetail(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	return r
}

// Run serves HTTP on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *HTTPServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(listen) }()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
