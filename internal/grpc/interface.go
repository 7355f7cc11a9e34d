package grpc

import (
	"context"
	"time"

	"github.com/godilite/feedback-insights/internal/feedback"
	"github.com/godilite/feedback-insights/internal/service"
)

// Cacher defines the interface for cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type InsightsService interface {
	SentimentSeries(ctx context.Context, source feedback.Source) (service.SeriesDescriptor, error)
	DistributionSeries(ctx context.Context, source feedback.Source) (service.SeriesDescriptor, error)
	NegativeComments(ctx context.Context, source feedback.Source) ([]string, error)
	VolumeSeries(ctx context.Context) (service.SeriesDescriptor, error)
	NetPromoterScore(ctx context.Context) (service.NPSSummary, error)
	Dashboard(ctx context.Context) (service.Dashboard, error)
}
