package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authkeeper/internal/authrpc"
	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/gate"
	"github.com/dmitrijs2005/authkeeper/internal/server/services"
	"github.com/dmitrijs2005/authkeeper/internal/server/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type signupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Gender   string `json:"gender" validate:"required,max=32"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// readFields copies the named string fields of in into the given targets.
func readFields(in *structpb.Struct, fields map[string]*string) error {
	for key, dst := range fields {
		v, err := authrpc.String(in, key)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

func (s *GRPCServer) Signup(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req signupRequest
	if err := readFields(in, map[string]*string{
		authrpc.FieldName:     &req.Name,
		authrpc.FieldEmail:    &req.Email,
		authrpc.FieldGender:   &req.Gender,
		authrpc.FieldPassword: &req.Password,
	}); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := validation.Struct(&req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	id, err := s.users.Signup(ctx, services.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Gender:   req.Gender,
		Password: req.Password,
	})
	if err != nil {
		return nil, s.serviceError(ctx, err)
	}

	return authrpc.NewStruct(map[string]string{
		authrpc.FieldMessage: common.MsgUserCreated,
		authrpc.FieldUserID:  id.String(),
	}), nil
}

func (s *GRPCServer) Login(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req loginRequest
	if err := readFields(in, map[string]*string{
		authrpc.FieldEmail:    &req.Email,
		authrpc.FieldPassword: &req.Password,
	}); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := validation.Struct(&req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	token, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.serviceError(ctx, err)
	}

	return authrpc.NewStruct(map[string]string{
		authrpc.FieldMessage: common.MsgLoginSuccessful,
		authrpc.FieldToken:   token,
	}), nil
}

// Me requires authInterceptor to have placed the caller in ctx.
func (s *GRPCServer) Me(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	u, ok := gate.UserFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, common.MsgInvalidToken)
	}
	return authrpc.NewStruct(map[string]string{
		authrpc.FieldName:   u.Name,
		authrpc.FieldEmail:  u.Email,
		authrpc.FieldGender: u.Gender,
	}), nil
}

func (s *GRPCServer) Ping(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return authrpc.NewStruct(map[string]string{authrpc.FieldStatus: "OK"}), nil
}

func (s *GRPCServer) serviceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, common.MsgEmailExists)
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, common.MsgInvalidCredentials)
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.logger.Error(ctx, "request failed", "error", err)
		return status.Error(codes.Internal, common.MsgInternal)
	}
}
