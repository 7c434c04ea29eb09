// Package authrpc describes the gRPC surface shared by the server and the
// CLI client. Messages are google.protobuf.Struct values; the field names
// below are the keys both sides read and write.
package authrpc

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "authkeeper.AuthService"

// Full method names as used by grpc.ClientConn.Invoke and in
// grpc.UnaryServerInfo.FullMethod.
const (
	SignupMethod = "/" + ServiceName + "/Signup"
	LoginMethod  = "/" + ServiceName + "/Login"
	MeMethod     = "/" + ServiceName + "/Me"
	PingMethod   = "/" + ServiceName + "/Ping"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldGender   = "gender"
	FieldPassword = "password"
	FieldMessage  = "message"
	FieldUserID   = "user_id"
	FieldToken    = "token"
	FieldStatus   = "status"
)

// NewStruct builds a message from string fields.
func NewStruct(fields map[string]string) *structpb.Struct {
	s := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		s.Fields[k] = structpb.NewStringValue(v)
	}
	return s
}

// String returns the string field key of s. A missing field or null is "";
// any other non-string value is an error.
func String(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NullValue:
		return "", nil
	default:
		return "", fmt.Errorf("%s: must be a string", key)
	}
}
