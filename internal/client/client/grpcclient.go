// Package client talks to the authkeeper gRPC service on behalf of the CLI.
// Server status codes are mapped to the sentinel errors of this package,
// wrapped together with the server's message.
package client

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/authkeeper/internal/authrpc"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type SignupInput struct {
	Name     string
	Email    string
	Gender   string
	Password string
}

type Profile struct {
	Name   string
	Email  string
	Gender string
}

type GRPCClient struct {
	conn *grpc.ClientConn
}

// NewGRPCClient prepares a connection to addr. No network traffic happens
// until the first call.
func NewGRPCClient(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client: %w", err)
	}
	return &GRPCClient{conn: conn}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

// Signup registers an account and returns its id.
func (c *GRPCClient) Signup(ctx context.Context, in SignupInput) (string, error) {
	out, err := c.invoke(ctx, authrpc.SignupMethod, map[string]string{
		authrpc.FieldName:     in.Name,
		authrpc.FieldEmail:    in.Email,
		authrpc.FieldGender:   in.Gender,
		authrpc.FieldPassword: in.Password,
	})
	if err != nil {
		return "", err
	}
	return authrpc.String(out, authrpc.FieldUserID)
}

// Login exchanges credentials for a bearer token.
func (c *GRPCClient) Login(ctx context.Context, email, password string) (string, error) {
	out, err := c.invoke(ctx, authrpc.LoginMethod, map[string]string{
		authrpc.FieldEmail:    email,
		authrpc.FieldPassword: password,
	})
	if err != nil {
		return "", err
	}
	return authrpc.String(out, authrpc.FieldToken)
}

// Me returns the profile of the account token was issued to.
func (c *GRPCClient) Me(ctx context.Context, token string) (*Profile, error) {
	ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationMetadata, common.BearerPrefix+token)

	out, err := c.invoke(ctx, authrpc.MeMethod, nil)
	if err != nil {
		return nil, err
	}

	p := &Profile{}
	for key, dst := range map[string]*string{
		authrpc.FieldName:   &p.Name,
		authrpc.FieldEmail:  &p.Email,
		authrpc.FieldGender: &p.Gender,
	} {
		if *dst, err = authrpc.String(out, key); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	_, err := c.invoke(ctx, authrpc.PingMethod, nil)
	return err
}

func (c *GRPCClient) invoke(ctx context.Context, method string, fields map[string]string) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, authrpc.NewStruct(fields), out); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func mapError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("server error: %s", st.Message())
	}
}
