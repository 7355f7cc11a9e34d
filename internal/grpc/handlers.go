package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pb "github.com/godilite/feedback-insights/api/v1"
	"github.com/godilite/feedback-insights/internal/feedback"
	"github.com/godilite/feedback-insights/internal/service"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	defaultCacheDuration = 10 * time.Minute
	defaultGRPCTimeout   = 10 * time.Second
)

type CacheKeyType string

const (
	cacheKeySentiment    CacheKeyType = "grpc:sentiment_series"
	cacheKeyDistribution CacheKeyType = "grpc:category_distribution"
	cacheKeyComments     CacheKeyType = "grpc:negative_comments"
	cacheKeyVolume       CacheKeyType = "grpc:volume_series"
	cacheKeyNPS          CacheKeyType = "grpc:net_promoter_score"
	cacheKeyDashboard    CacheKeyType = "grpc:dashboard"
)

type GRPCHandlers struct {
	pb.UnimplementedFeedbackInsightsServer
	insights InsightsService
	cache    *readThrough
	logger   *zap.Logger
}

// NewGRPCHandlers initializes the gRPC handlers. cache may be nil.
func NewGRPCHandlers(insights InsightsService, cache Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if insights == nil {
		panic("nil InsightsService provided to NewGRPCHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("grpc-handler")
	return &GRPCHandlers{
		insights: insights,
		cache:    newReadThrough(cache, ttl, logger),
		logger:   logger,
	}
}

func parseSource(req *wrapperspb.StringValue) (feedback.Source, error) {
	src, err := feedback.ParseSource(req.GetValue())
	if err != nil {
		return "", status.Error(codes.InvalidArgument, err.Error())
	}
	return src, nil
}

func sourceKey(prefix CacheKeyType, source feedback.Source) string {
	return fmt.Sprintf("%s:%s", prefix, source)
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, feedback.ErrUnknownSource), errors.Is(err, service.ErrNotApplicable):
		s.logger.Info("invalid request", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, feedback.ErrIndex):
		s.logger.Error("curated position out of range", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, feedback.ErrNoRecords):
		s.logger.Info("no records found", zap.String("op", op))
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, feedback.ErrLoad):
		s.logger.Error("source load failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, service.ErrNoRespondents):
		s.logger.Info("source has no respondent classes", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, feedback.ErrUnknownCategory):
		s.logger.Error("category outside fixed map", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

// toStruct converts a JSON-tagged value into a protobuf Struct.
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func toList(texts []string) (*structpb.ListValue, error) {
	values := make([]any, len(texts))
	for i, t := range texts {
		values[i] = t
	}
	out, err := structpb.NewList(values)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func (s *GRPCHandlers) GetSentimentSeries(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	source, err := parseSource(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	series, err := FindAndCache(ctx, s.cache, sourceKey(cacheKeySentiment, source), func(fetchCtx context.Context) (service.SeriesDescriptor, error) {
		return s.insights.SentimentSeries(fetchCtx, source)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetSentimentSeries", err)
	}

	return toStruct(series)
}

func (s *GRPCHandlers) GetCategoryDistribution(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	source, err := parseSource(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	series, err := FindAndCache(ctx, s.cache, sourceKey(cacheKeyDistribution, source), func(fetchCtx context.Context) (service.SeriesDescriptor, error) {
		return s.insights.DistributionSeries(fetchCtx, source)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetCategoryDistribution", err)
	}

	return toStruct(series)
}

func (s *GRPCHandlers) GetNegativeComments(ctx context.Context, req *wrapperspb.StringValue) (*structpb.ListValue, error) {
	source, err := parseSource(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	texts, err := FindAndCache(ctx, s.cache, sourceKey(cacheKeyComments, source), func(fetchCtx context.Context) ([]string, error) {
		return s.insights.NegativeComments(fetchCtx, source)
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetNegativeComments", err)
	}

	return toList(texts)
}

func (s *GRPCHandlers) GetVolumeSeries(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	series, err := FindAndCache(ctx, s.cache, string(cacheKeyVolume), s.insights.VolumeSeries)
	if err != nil {
		return nil, s.handleError(ctx, "GetVolumeSeries", err)
	}

	return toStruct(series)
}

func (s *GRPCHandlers) GetNetPromoterScore(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	nps, err := FindAndCache(ctx, s.cache, string(cacheKeyNPS), s.insights.NetPromoterScore)
	if err != nil {
		return nil, s.handleError(ctx, "GetNetPromoterScore", err)
	}

	return toStruct(nps)
}

func (s *GRPCHandlers) GetDashboard(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	dashboard, err := FindAndCache(ctx, s.cache, string(cacheKeyDashboard), s.insights.Dashboard)
	if err != nil {
		return nil, s.handleError(ctx, "GetDashboard", err)
	}

	return toStruct(dashboard)
}
