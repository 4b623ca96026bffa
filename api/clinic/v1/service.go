package clinicv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "clinic.v1.ClinicService"

const (
	ClinicService_ListAvailability_FullMethodName       = "/clinic.v1.ClinicService/ListAvailability"
	ClinicService_ListAvailabilityJoined_FullMethodName = "/clinic.v1.ClinicService/ListAvailabilityJoined"
	ClinicService_ListBookings_FullMethodName           = "/clinic.v1.ClinicService/ListBookings"
	ClinicService_CreateBooking_FullMethodName          = "/clinic.v1.ClinicService/CreateBooking"
	ClinicService_IssueToken_FullMethodName             = "/clinic.v1.ClinicService/IssueToken"
	ClinicService_ListUsers_FullMethodName              = "/clinic.v1.ClinicService/ListUsers"
	ClinicService_CheckAdmin_FullMethodName             = "/clinic.v1.ClinicService/CheckAdmin"
	ClinicService_PromoteToAdmin_FullMethodName         = "/clinic.v1.ClinicService/PromoteToAdmin"
	ClinicService_CreateUser_FullMethodName             = "/clinic.v1.ClinicService/CreateUser"
)

type ClinicServiceServer interface {
	ListAvailability(context.Context, *ListAvailabilityRequest) (*ListAvailabilityResponse, error)
	ListAvailabilityJoined(context.Context, *ListAvailabilityRequest) (*ListAvailabilityResponse, error)
	ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error)
	CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error)
	IssueToken(context.Context, *IssueTokenRequest) (*IssueTokenResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	CheckAdmin(context.Context, *CheckAdminRequest) (*CheckAdminResponse, error)
	PromoteToAdmin(context.Context, *PromoteToAdminRequest) (*PromoteToAdminResponse, error)
	CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error)
}

// UnimplementedClinicServiceServer can be embedded for forward compatibility.
type UnimplementedClinicServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedClinicServiceServer) ListAvailability(context.Context, *ListAvailabilityRequest) (*ListAvailabilityResponse, error) {
	return nil, unimplemented("ListAvailability")
}
func (UnimplementedClinicServiceServer) ListAvailabilityJoined(context.Context, *ListAvailabilityRequest) (*ListAvailabilityResponse, error) {
	return nil, unimplemented("ListAvailabilityJoined")
}
func (UnimplementedClinicServiceServer) ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error) {
	return nil, unimplemented("ListBookings")
}
func (UnimplementedClinicServiceServer) CreateBooking(context.Context, *CreateBookingRequest) (*CreateBookingResponse, error) {
	return nil, unimplemented("CreateBooking")
}
func (UnimplementedClinicServiceServer) IssueToken(context.Context, *IssueTokenRequest) (*IssueTokenResponse, error) {
	return nil, unimplemented("IssueToken")
}
func (UnimplementedClinicServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, unimplemented("ListUsers")
}
func (UnimplementedClinicServiceServer) CheckAdmin(context.Context, *CheckAdminRequest) (*CheckAdminResponse, error) {
	return nil, unimplemented("CheckAdmin")
}
func (UnimplementedClinicServiceServer) PromoteToAdmin(context.Context, *PromoteToAdminRequest) (*PromoteToAdminResponse, error) {
	return nil, unimplemented("PromoteToAdmin")
}
func (UnimplementedClinicServiceServer) CreateUser(context.Context, *CreateUserRequest) (*CreateUserResponse, error) {
	return nil, unimplemented("CreateUser")
}

// unaryMethod builds the MethodDesc for one rpc from its interface method.
func unaryMethod[Req any, PReq interface {
	*Req
	Message
}, Resp any](name string, call func(ClinicServiceServer, context.Context, PReq) (Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := PReq(new(Req))
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ClinicServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ClinicServiceServer), ctx, req.(PReq))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ClinicService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClinicServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ListAvailability", ClinicServiceServer.ListAvailability),
		unaryMethod("ListAvailabilityJoined", ClinicServiceServer.ListAvailabilityJoined),
		unaryMethod("ListBookings", ClinicServiceServer.ListBookings),
		unaryMethod("CreateBooking", ClinicServiceServer.CreateBooking),
		unaryMethod("IssueToken", ClinicServiceServer.IssueToken),
		unaryMethod("ListUsers", ClinicServiceServer.ListUsers),
		unaryMethod("CheckAdmin", ClinicServiceServer.CheckAdmin),
		unaryMethod("PromoteToAdmin", ClinicServiceServer.PromoteToAdmin),
		unaryMethod("CreateUser", ClinicServiceServer.CreateUser),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/clinic/v1/clinic.proto",
}

// RegisterClinicServiceServer registers srv on s. The server must be built
// with grpc.ForceServerCodec(Codec{}).
func RegisterClinicServiceServer(s grpc.ServiceRegistrar, srv ClinicServiceServer) {
	s.RegisterService(&ClinicService_ServiceDesc, srv)
}

type ClinicServiceClient interface {
	ListAvailability(ctx context.Context, in *ListAvailabilityRequest, opts ...grpc.CallOption) (*ListAvailabilityResponse, error)
	ListAvailabilityJoined(ctx context.Context, in *ListAvailabilityRequest, opts ...grpc.CallOption) (*ListAvailabilityResponse, error)
	ListBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error)
	CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error)
	IssueToken(ctx context.Context, in *IssueTokenRequest, opts ...grpc.CallOption) (*IssueTokenResponse, error)
	ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error)
	CheckAdmin(ctx context.Context, in *CheckAdminRequest, opts ...grpc.CallOption) (*CheckAdminResponse, error)
	PromoteToAdmin(ctx context.Context, in *PromoteToAdminRequest, opts ...grpc.CallOption) (*PromoteToAdminResponse, error)
	CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error)
}

type clinicServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewClinicServiceClient(cc grpc.ClientConnInterface) ClinicServiceClient {
	return &clinicServiceClient{cc}
}

func (c *clinicServiceClient) invoke(ctx context.Context, method string, in, out Message, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.ForceCodec(Codec{})}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}

func (c *clinicServiceClient) ListAvailability(ctx context.Context, in *ListAvailabilityRequest, opts ...grpc.CallOption) (*ListAvailabilityResponse, error) {
	out := new(ListAvailabilityResponse)
	if err := c.invoke(ctx, ClinicService_ListAvailability_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) ListAvailabilityJoined(ctx context.Context, in *ListAvailabilityRequest, opts ...grpc.CallOption) (*ListAvailabilityResponse, error) {
	out := new(ListAvailabilityResponse)
	if err := c.invoke(ctx, ClinicService_ListAvailabilityJoined_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) ListBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error) {
	out := new(ListBookingsResponse)
	if err := c.invoke(ctx, ClinicService_ListBookings_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) CreateBooking(ctx context.Context, in *CreateBookingRequest, opts ...grpc.CallOption) (*CreateBookingResponse, error) {
	out := new(CreateBookingResponse)
	if err := c.invoke(ctx, ClinicService_CreateBooking_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) IssueToken(ctx context.Context, in *IssueTokenRequest, opts ...grpc.CallOption) (*IssueTokenResponse, error) {
	out := new(IssueTokenResponse)
	if err := c.invoke(ctx, ClinicService_IssueToken_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	out := new(ListUsersResponse)
	if err := c.invoke(ctx, ClinicService_ListUsers_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) CheckAdmin(ctx context.Context, in *CheckAdminRequest, opts ...grpc.CallOption) (*CheckAdminResponse, error) {
	out := new(CheckAdminResponse)
	if err := c.invoke(ctx, ClinicService_CheckAdmin_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) PromoteToAdmin(ctx context.Context, in *PromoteToAdminRequest, opts ...grpc.CallOption) (*PromoteToAdminResponse, error) {
	out := new(PromoteToAdminResponse)
	if err := c.invoke(ctx, ClinicService_PromoteToAdmin_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *clinicServiceClient) CreateUser(ctx context.Context, in *CreateUserRequest, opts ...grpc.CallOption) (*CreateUserResponse, error) {
	out := new(CreateUserResponse)
	if err := c.invoke(ctx, ClinicService_CreateUser_FullMethodName, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}
