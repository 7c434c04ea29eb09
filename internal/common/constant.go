package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key carrying
// the bearer token. gRPC metadata keys are lower-case.
const (
	AuthorizationHeaderName = "Authorization"
	AuthorizationMetadata   = "authorization"
	BearerPrefix            = "Bearer "
)

// Client-visible messages. Each failure path uses exactly one of these so the
// response does not reveal which check failed.
const (
	MsgUserCreated        = "User created"
	MsgLoginSuccessful    = "Login successful"
	MsgEmailExists        = "Email already exists"
	MsgInvalidCredentials = "Invalid credentials"
	MsgTokenMissing       = "Token missing"
	MsgInvalidToken       = "Invalid or expired token"
	MsgInternal           = "Internal server error"
)
