// Package v1 holds the feedback.v1.FeedbackInsights service definition.
// Messages are protobuf well-known types, so only the service and file
// descriptors and the client are written here; keep them in sync with
// insights.proto.
package v1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "feedback.v1.FeedbackInsights"

const (
	FeedbackInsights_GetSentimentSeries_FullMethodName      = "/feedback.v1.FeedbackInsights/GetSentimentSeries"
	FeedbackInsights_GetCategoryDistribution_FullMethodName = "/feedback.v1.FeedbackInsights/GetCategoryDistribution"
	FeedbackInsights_GetNegativeComments_FullMethodName     = "/feedback.v1.FeedbackInsights/GetNegativeComments"
	FeedbackInsights_GetVolumeSeries_FullMethodName         = "/feedback.v1.FeedbackInsights/GetVolumeSeries"
	FeedbackInsights_GetNetPromoterScore_FullMethodName     = "/feedback.v1.FeedbackInsights/GetNetPromoterScore"
	FeedbackInsights_GetDashboard_FullMethodName            = "/feedback.v1.FeedbackInsights/GetDashboard"
)

// FeedbackInsightsServer is the server API for the FeedbackInsights service.
type FeedbackInsightsServer interface {
	GetSentimentSeries(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetCategoryDistribution(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	GetNegativeComments(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error)
	GetVolumeSeries(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetNetPromoterScore(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// UnimplementedFeedbackInsightsServer can be embedded to stay forward compatible.
type UnimplementedFeedbackInsightsServer struct{}

func (UnimplementedFeedbackInsightsServer) GetSentimentSeries(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSentimentSeries not implemented")
}

func (UnimplementedFeedbackInsightsServer) GetCategoryDistribution(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCategoryDistribution not implemented")
}

func (UnimplementedFeedbackInsightsServer) GetNegativeComments(context.Context, *wrapperspb.StringValue) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetNegativeComments not implemented")
}

func (UnimplementedFeedbackInsightsServer) GetVolumeSeries(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetVolumeSeries not implemented")
}

func (UnimplementedFeedbackInsightsServer) GetNetPromoterScore(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetNetPromoterScore not implemented")
}

func (UnimplementedFeedbackInsightsServer) GetDashboard(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetDashboard not implemented")
}

// RegisterFeedbackInsightsServer registers srv on s.
func RegisterFeedbackInsightsServer(s grpc.ServiceRegistrar, srv FeedbackInsightsServer) {
	s.RegisterService(&FeedbackInsights_ServiceDesc, srv)
}

// unary adapts a typed method to grpc.MethodHandler.
func unary[Req any, Resp any](fullMethod string, newReq func() *Req, call func(FeedbackInsightsServer, context.Context, *Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(FeedbackInsightsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(FeedbackInsightsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }
func newEmpty() *emptypb.Empty           { return new(emptypb.Empty) }

// FeedbackInsights_ServiceDesc is the grpc.ServiceDesc for FeedbackInsights.
var FeedbackInsights_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*FeedbackInsightsServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSentimentSeries",
			Handler: unary(FeedbackInsights_GetSentimentSeries_FullMethodName, newString,
				func(s FeedbackInsightsServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
					return s.GetSentimentSeries(ctx, in)
				}),
		},
		{
			MethodName: "GetCategoryDistribution",
			Handler: unary(FeedbackInsights_GetCategoryDistribution_FullMethodName, newString,
				func(s FeedbackInsightsServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
					return s.GetCategoryDistribution(ctx, in)
				}),
		},
		{
			MethodName: "GetNegativeComments",
			Handler: unary(FeedbackInsights_GetNegativeComments_FullMethodName, newString,
				func(s FeedbackInsightsServer, ctx context.Context, in *wrapperspb.StringValue) (*structpb.ListValue, error) {
					return s.GetNegativeComments(ctx, in)
				}),
		},
		{
			MethodName: "GetVolumeSeries",
			Handler: unary(FeedbackInsights_GetVolumeSeries_FullMethodName, newEmpty,
				func(s FeedbackInsightsServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
					return s.GetVolumeSeries(ctx, in)
				}),
		},
		{
			MethodName: "GetNetPromoterScore",
			Handler: unary(FeedbackInsights_GetNetPromoterScore_FullMethodName, newEmpty,
				func(s FeedbackInsightsServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
					return s.GetNetPromoterScore(ctx, in)
				}),
		},
		{
			MethodName: "GetDashboard",
			Handler: unary(FeedbackInsights_GetDashboard_FullMethodName, newEmpty,
				func(s FeedbackInsightsServer, ctx context.Context, in *emptypb.Empty) (*structpb.Struct, error) {
					return s.GetDashboard(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: ProtoPath,
}

// FeedbackInsightsClient is the client API for the FeedbackInsights service.
type FeedbackInsightsClient interface {
	GetSentimentSeries(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetCategoryDistribution(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetNegativeComments(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetVolumeSeries(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetNetPromoterScore(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type feedbackInsightsClient struct {
	cc grpc.ClientConnInterface
}

func NewFeedbackInsightsClient(cc grpc.ClientConnInterface) FeedbackInsightsClient {
	return &feedbackInsightsClient{cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *feedbackInsightsClient) GetSentimentSeries(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, FeedbackInsights_GetSentimentSeries_FullMethodName, in, opts)
}

func (c *feedbackInsightsClient) GetCategoryDistribution(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, FeedbackInsights_GetCategoryDistribution_FullMethodName, in, opts)
}

func (c *feedbackInsightsClient) GetNegativeComments(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	return invoke[structpb.ListValue](ctx, c.cc, FeedbackInsights_GetNegativeComments_FullMethodName, in, opts)
}

func (c *feedbackInsightsClient) GetVolumeSeries(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, FeedbackInsights_GetVolumeSeries_FullMethodName, in, opts)
}

func (c *feedbackInsightsClient) GetNetPromoterScore(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, FeedbackInsights_GetNetPromoterScore_FullMethodName, in, opts)
}

func (c *feedbackInsightsClient) GetDashboard(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return invoke[structpb.Struct](ctx, c.cc, FeedbackInsights_GetDashboard_FullMethodName, in, opts)
}
