package v1

import (
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// ProtoPath is the registry path of insights.proto.
const ProtoPath = "api/v1/insights.proto"

// File_api_v1_insights_proto describes insights.proto. It is registered
// with protoregistry.GlobalFiles so server reflection can serve it.
var File_api_v1_insights_proto protoreflect.FileDescriptor

type rpc struct {
	name, input, output string
}

var rpcs = []rpc{
	{"GetSentimentSeries", ".google.protobuf.StringValue", ".google.protobuf.Struct"},
	{"GetCategoryDistribution", ".google.protobuf.StringValue", ".google.protobuf.Struct"},
	{"GetNegativeComments", ".google.protobuf.StringValue", ".google.protobuf.ListValue"},
	{"GetVolumeSeries", ".google.protobuf.Empty", ".google.protobuf.Struct"},
	{"GetNetPromoterScore", ".google.protobuf.Empty", ".google.protobuf.Struct"},
	{"GetDashboard", ".google.protobuf.Empty", ".google.protobuf.Struct"},
}

func insightsFile() *descriptorpb.FileDescriptorProto {
	methods := make([]*descriptorpb.MethodDescriptorProto, len(rpcs))
	for i, r := range rpcs {
		methods[i] = &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(r.name),
			InputType:  proto.String(r.input),
			OutputType: proto.String(r.output),
		}
	}
	return &descriptorpb.FileDescriptorProto{
		Name:    proto.String(ProtoPath),
		Package: proto.String("feedback.v1"),
		Dependency: []string{
			"google/protobuf/empty.proto",
			"google/protobuf/struct.proto",
			"google/protobuf/wrappers.proto",
		},
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name:   proto.String("FeedbackInsights"),
			Method: methods,
		}},
		Options: &descriptorpb.FileOptions{
			GoPackage: proto.String("github.com/godilite/feedback-insights/api/v1;v1"),
		},
		Syntax: proto.String("proto3"),
	}
}

// The well-known type files are registered by the emptypb, structpb and
// wrapperspb imports, which initialize before this package.
func init() {
	fd, err := protodesc.NewFile(insightsFile(), protoregistry.GlobalFiles)
	if err != nil {
		panic(fmt.Sprintf("build %s descriptor: %v", ProtoPath, err))
	}
	if err := protoregistry.GlobalFiles.RegisterFile(fd); err != nil {
		panic(fmt.Sprintf("register %s: %v", ProtoPath, err))
	}
	File_api_v1_insights_proto = fd
}
