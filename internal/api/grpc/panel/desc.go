package panel

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "security.v1.Panel"

// Full method names of the Panel service.
const (
	ArmFullMethod       = "/" + ServiceName + "/Arm"
	DisarmFullMethod    = "/" + ServiceName + "/Disarm"
	BreachFullMethod    = "/" + ServiceName + "/Breach"
	PanicFullMethod     = "/" + ServiceName + "/Panic"
	ResetFullMethod     = "/" + ServiceName + "/Reset"
	GetStatusFullMethod = "/" + ServiceName + "/GetStatus"
)

// PanelServer is the server API for the Panel service.
//
//nolint:revive // Name mirrors generated gRPC server interfaces.
type PanelServer interface {
	Arm(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Disarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	Breach(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Panic(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Reset(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	GetStatus(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// ServiceDesc describes the Panel service for grpc.Server.RegisterService.
//
//nolint:gochecknoglobals // Service descriptors are package-level by gRPC convention.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PanelServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Arm", Handler: unaryHandler(ArmFullMethod, PanelServer.Arm)},
		{MethodName: "Disarm", Handler: unaryHandler(DisarmFullMethod, PanelServer.Disarm)},
		{MethodName: "Breach", Handler: unaryHandler(BreachFullMethod, PanelServer.Breach)},
		{MethodName: "Panic", Handler: unaryHandler(PanicFullMethod, PanelServer.Panic)},
		{MethodName: "Reset", Handler: unaryHandler(ResetFullMethod, PanelServer.Reset)},
		{MethodName: "GetStatus", Handler: unaryHandler(GetStatusFullMethod, PanelServer.GetStatus)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "security/v1/panel",
}

// RegisterPanelServer registers the implementation on the gRPC service registrar.
func RegisterPanelServer(registrar grpc.ServiceRegistrar, srv PanelServer) {
	registrar.RegisterService(&ServiceDesc, srv)
}

// unaryHandler builds a method handler that decodes the request into a fresh Req
// and routes it through the server interceptor chain.
func unaryHandler[Req any](
	fullMethod string,
	call func(PanelServer, context.Context, *Req) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}

		server := srv.(PanelServer) //nolint:forcetypeassert // HandlerType guarantees the type.
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed := req.(*Req) //nolint:forcetypeassert // The request was decoded above.

			return call(server, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}

// PanelClient is the client API for the Panel service.
//
//nolint:revive // Name mirrors generated gRPC client types.
type PanelClient struct {
	// cc is the connection requests are sent over.
	cc grpc.ClientConnInterface
}

// NewPanelClient creates a client bound to the connection.
func NewPanelClient(cc grpc.ClientConnInterface) *PanelClient {
	return &PanelClient{
		cc: cc,
	}
}

// Arm calls Panel.Arm.
func (c *PanelClient) Arm(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ArmFullMethod, new(emptypb.Empty), opts...)
}

// Disarm calls Panel.Disarm with the code.
func (c *PanelClient) Disarm(ctx context.Context, code string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, DisarmFullMethod, wrapperspb.String(code), opts...)
}

// Breach calls Panel.Breach.
func (c *PanelClient) Breach(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, BreachFullMethod, new(emptypb.Empty), opts...)
}

// Panic calls Panel.Panic.
func (c *PanelClient) Panic(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, PanicFullMethod, new(emptypb.Empty), opts...)
}

// Reset calls Panel.Reset with the code.
func (c *PanelClient) Reset(ctx context.Context, code string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ResetFullMethod, wrapperspb.String(code), opts...)
}

// GetStatus calls Panel.GetStatus.
func (c *PanelClient) GetStatus(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetStatusFullMethod, new(emptypb.Empty), opts...)
}

func (c *PanelClient) invoke(ctx context.Context, method string, in any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
