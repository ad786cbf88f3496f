// Package passrpc describes the PassDirectory gRPC service shared by the
// gate client and the pass directory server.
//
// Messages are protobuf well-known types (Struct, ListValue, StringValue,
// Empty), so no generated code is needed: the service descriptor, client stub
// and server registration below play the role protoc-gen-go-grpc output
// usually does. Typed views of the Struct payloads live in messages.go.
package passrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "gateguard.PassDirectory"

const (
	PingMethod       = "/" + ServiceName + "/Ping"
	LoginMethod      = "/" + ServiceName + "/Login"
	ListPassesMethod = "/" + ServiceName + "/ListPasses"
	IssuePassMethod  = "/" + ServiceName + "/IssuePass"
	RevokePassMethod = "/" + ServiceName + "/RevokePass"
	CreateUserMethod = "/" + ServiceName + "/CreateUser"
)

// PassDirectoryClient is the client API for the PassDirectory service.
type PassDirectoryClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListPasses(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error)
	IssuePass(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	RevokePass(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
}

type passDirectoryClient struct {
	cc grpc.ClientConnInterface
}

func NewPassDirectoryClient(cc grpc.ClientConnInterface) PassDirectoryClient {
	return &passDirectoryClient{cc: cc}
}

func (c *passDirectoryClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, PingMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passDirectoryClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, LoginMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passDirectoryClient) ListPasses(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListPassesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passDirectoryClient) IssuePass(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IssuePassMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passDirectoryClient) RevokePass(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, RevokePassMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *passDirectoryClient) CreateUser(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, CreateUserMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// PassDirectoryServer is the server API for the PassDirectory service.
type PassDirectoryServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListPasses(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	IssuePass(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RevokePass(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	CreateUser(context.Context, *structpb.Struct) (*emptypb.Empty, error)
}

// UnimplementedPassDirectoryServer can be embedded to get forward-compatible
// implementations.
type UnimplementedPassDirectoryServer struct{}

func (UnimplementedPassDirectoryServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedPassDirectoryServer) Login(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedPassDirectoryServer) ListPasses(context.Context, *structpb.Struct) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPasses not implemented")
}
func (UnimplementedPassDirectoryServer) IssuePass(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method IssuePass not implemented")
}
func (UnimplementedPassDirectoryServer) RevokePass(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokePass not implemented")
}
func (UnimplementedPassDirectoryServer) CreateUser(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateUser not implemented")
}

func RegisterPassDirectoryServer(s grpc.ServiceRegistrar, srv PassDirectoryServer) {
	s.RegisterService(&PassDirectory_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodDesc.Handler.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	newReq func() *Req,
	call func(srv PassDirectoryServer, ctx context.Context, req *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PassDirectoryServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PassDirectoryServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PassDirectory_ServiceDesc is the grpc.ServiceDesc for the PassDirectory service.
var PassDirectory_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PassDirectoryServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Ping",
			Handler: unaryHandler(PingMethod, func() *emptypb.Empty { return new(emptypb.Empty) },
				func(s PassDirectoryServer, ctx context.Context, in *emptypb.Empty) (*wrapperspb.StringValue, error) {
					return s.Ping(ctx, in)
				}),
		},
		{
			MethodName: "Login",
			Handler: unaryHandler(LoginMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(s PassDirectoryServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
					return s.Login(ctx, in)
				}),
		},
		{
			MethodName: "ListPasses",
			Handler: unaryHandler(ListPassesMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(s PassDirectoryServer, ctx context.Context, in *structpb.Struct) (*structpb.ListValue, error) {
					return s.ListPasses(ctx, in)
				}),
		},
		{
			MethodName: "IssuePass",
			Handler: unaryHandler(IssuePassMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(s PassDirectoryServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
					return s.IssuePass(ctx, in)
				}),
		},
		{
			MethodName: "RevokePass",
			Handler: unaryHandler(RevokePassMethod, func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
				func(s PassDirectoryServer, ctx context.Context, in *wrapperspb.StringValue) (*emptypb.Empty, error) {
					return s.RevokePass(ctx, in)
				}),
		},
		{
			MethodName: "CreateUser",
			Handler: unaryHandler(CreateUserMethod, func() *structpb.Struct { return new(structpb.Struct) },
				func(s PassDirectoryServer, ctx context.Context, in *structpb.Struct) (*emptypb.Empty, error) {
					return s.CreateUser(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "passrpc/service.go",
}
