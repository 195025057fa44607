// Package surveyv1 declares the survey.v1.SurveyReports gRPC service.
//
// Messages are protobuf well-known types so the service needs no compiled
// .proto descriptors:
//
//	Answer       StringValue (query id)          -> StringValue (answer line)
//	GetSummary   Empty                           -> Struct (summary document)
//	RenderChart  Struct {kind, questions, format} -> Struct {kind, content_type, fell_back, image}
//	ListQueries  Empty                           -> Struct {queries: [{name, description}]}
//
// The image field of a RenderChart response is base64 encoded.
package surveyv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "survey.v1.SurveyReports"

const (
	AnswerMethod      = "/" + ServiceName + "/Answer"
	GetSummaryMethod  = "/" + ServiceName + "/GetSummary"
	RenderChartMethod = "/" + ServiceName + "/RenderChart"
	ListQueriesMethod = "/" + ServiceName + "/ListQueries"
)

// SurveyReportsServer is the server API for the SurveyReports service.
// Implementations must embed UnimplementedSurveyReportsServer.
type SurveyReportsServer interface {
	Answer(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	GetSummary(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	RenderChart(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListQueries(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	mustEmbedUnimplementedSurveyReportsServer()
}

type UnimplementedSurveyReportsServer struct{}

func (UnimplementedSurveyReportsServer) Answer(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Answer not implemented")
}

func (UnimplementedSurveyReportsServer) GetSummary(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSummary not implemented")
}

func (UnimplementedSurveyReportsServer) RenderChart(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RenderChart not implemented")
}

func (UnimplementedSurveyReportsServer) ListQueries(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListQueries not implemented")
}

func (UnimplementedSurveyReportsServer) mustEmbedUnimplementedSurveyReportsServer() {}

func RegisterSurveyReportsServer(s grpc.ServiceRegistrar, srv SurveyReportsServer) {
	s.RegisterService(&SurveyReportsServiceDesc, srv)
}

// unary adapts one typed method to the grpc.MethodDesc handler shape.
func unary[Req any, Resp any](
	fullMethod string,
	call func(SurveyReportsServer, context.Context, *Req) (*Resp, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SurveyReportsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SurveyReportsServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var SurveyReportsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SurveyReportsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Answer", Handler: unary(AnswerMethod, SurveyReportsServer.Answer)},
		{MethodName: "GetSummary", Handler: unary(GetSummaryMethod, SurveyReportsServer.GetSummary)},
		{MethodName: "RenderChart", Handler: unary(RenderChartMethod, SurveyReportsServer.RenderChart)},
		{MethodName: "ListQueries", Handler: unary(ListQueriesMethod, SurveyReportsServer.ListQueries)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "survey/v1/survey.proto",
}

// SurveyReportsClient is the client API for the SurveyReports service.
type SurveyReportsClient interface {
	Answer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	GetSummary(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	RenderChart(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListQueries(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type surveyReportsClient struct {
	cc grpc.ClientConnInterface
}

func NewSurveyReportsClient(cc grpc.ClientConnInterface) SurveyReportsClient {
	return &surveyReportsClient{cc: cc}
}

func (c *surveyReportsClient) Answer(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, AnswerMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *surveyReportsClient) GetSummary(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetSummaryMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *surveyReportsClient) RenderChart(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, RenderChartMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *surveyReportsClient) ListQueries(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, ListQueriesMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
