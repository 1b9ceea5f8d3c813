package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "borrowdesk.BorrowDesk"

// BorrowDeskServer is the server API for the borrowdesk.BorrowDesk service.
type BorrowDeskServer interface {
	GetCart(context.Context, *GetCartRequest) (*CartResponse, error)
	AddToCart(context.Context, *AddToCartRequest) (*CartResponse, error)
	RemoveFromCart(context.Context, *CartItemRequest) (*CartResponse, error)
	ToggleSelection(context.Context, *CartItemRequest) (*CartResponse, error)
	ClearCart(context.Context, *ClearCartRequest) (*CartResponse, error)

	SubmitBorrowRequest(context.Context, *SubmitBorrowRequestRequest) (*SubmitBorrowRequestResponse, error)
	ListMyBorrowRequests(context.Context, *ListMyBorrowRequestsRequest) (*BorrowRequestList, error)
	CancelMyBorrowRequest(context.Context, *RequestIDRequest) (*BorrowRequestResponse, error)
	ListMyBorrowings(context.Context, *ListMyBorrowingsRequest) (*BorrowingList, error)
	GetProfileSummary(context.Context, *ProfileSummaryRequest) (*ProfileSummaryResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)

	ListBorrowRequests(context.Context, *PageRequest) (*RequestPageResponse, error)
	GetBorrowRequest(context.Context, *RequestIDRequest) (*BorrowRequestResponse, error)
	UpdateBorrowRequestStatus(context.Context, *UpdateStatusRequest) (*BorrowRequestResponse, error)
	ListBorrowings(context.Context, *PageRequest) (*BorrowingPageResponse, error)
	MarkBorrowingReturned(context.Context, *MarkReturnedRequest) (*BorrowingResponse, error)
}

type access int

const (
	accessGuest access = iota
	accessUser
	accessAdmin
)

// methodAccess is the minimum caller an RPC accepts.
var methodAccess = map[string]access{
	"GetCart":                   accessGuest,
	"AddToCart":                 accessGuest,
	"RemoveFromCart":            accessGuest,
	"ToggleSelection":           accessGuest,
	"ClearCart":                 accessGuest,
	"SubmitBorrowRequest":       accessUser,
	"ListMyBorrowRequests":      accessUser,
	"CancelMyBorrowRequest":     accessUser,
	"ListMyBorrowings":          accessUser,
	"GetProfileSummary":         accessUser,
	"Logout":                    accessUser,
	"ListBorrowRequests":        accessAdmin,
	"GetBorrowRequest":          accessAdmin,
	"UpdateBorrowRequestStatus": accessAdmin,
	"ListBorrowings":            accessAdmin,
	"MarkBorrowingReturned":     accessAdmin,
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

func unary[Req, Resp any](name string, call func(BorrowDeskServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(BorrowDeskServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod(name)}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(BorrowDeskServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BorrowDeskServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetCart", BorrowDeskServer.GetCart),
		unary("AddToCart", BorrowDeskServer.AddToCart),
		unary("RemoveFromCart", BorrowDeskServer.RemoveFromCart),
		unary("ToggleSelection", BorrowDeskServer.ToggleSelection),
		unary("ClearCart", BorrowDeskServer.ClearCart),
		unary("SubmitBorrowRequest", BorrowDeskServer.SubmitBorrowRequest),
		unary("ListMyBorrowRequests", BorrowDeskServer.ListMyBorrowRequests),
		unary("CancelMyBorrowRequest", BorrowDeskServer.CancelMyBorrowRequest),
		unary("ListMyBorrowings", BorrowDeskServer.ListMyBorrowings),
		unary("GetProfileSummary", BorrowDeskServer.GetProfileSummary),
		unary("Logout", BorrowDeskServer.Logout),
		unary("ListBorrowRequests", BorrowDeskServer.ListBorrowRequests),
		unary("GetBorrowRequest", BorrowDeskServer.GetBorrowRequest),
		unary("UpdateBorrowRequestStatus", BorrowDeskServer.UpdateBorrowRequestStatus),
		unary("ListBorrowings", BorrowDeskServer.ListBorrowings),
		unary("MarkBorrowingReturned", BorrowDeskServer.MarkBorrowingReturned),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "borrowdesk",
}

func RegisterBorrowDeskServer(s grpc.ServiceRegistrar, srv BorrowDeskServer) {
	s.RegisterService(&ServiceDesc, srv)
}
