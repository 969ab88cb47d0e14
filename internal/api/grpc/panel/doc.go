// Package panel implements the gRPC transport for the security controller.
//
// The service is described by a hand-written grpc.ServiceDesc whose messages
// are protobuf well-known types: Empty for plain commands, StringValue for
// commands carrying a code and Struct for the resulting controller status.
// The issuing actor travels in request metadata.
package panel
