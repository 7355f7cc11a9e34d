package mocks

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/godilite/feedback-insights/internal/feedback"
	"github.com/godilite/feedback-insights/internal/service"
)

// MockInsightsService is a mock implementation of the InsightsService
// interface for testing the handler layer. Calls counts every invocation.
type MockInsightsService struct {
	SentimentSeriesFunc    func(ctx context.Context, source feedback.Source) (service.SeriesDescriptor, error)
	DistributionSeriesFunc func(ctx context.Context, source feedback.Source) (service.SeriesDescriptor, error)
	NegativeCommentsFunc   func(ctx context.Context, source feedback.Source) ([]string, error)
	VolumeSeriesFunc       func(ctx context.Context) (service.SeriesDescriptor, error)
	NetPromoterScoreFunc   func(ctx context.Context) (service.NPSSummary, error)
	DashboardFunc          func(ctx context.Context) (service.Dashboard, error)

	Calls atomic.Int32
}

func (m *MockInsightsService) SentimentSeries(ctx context.Context, source feedback.Source) (service.SeriesDescriptor, error) {
	m.Calls.Add(1)
	if m.SentimentSeriesFunc != nil {
		return m.SentimentSeriesFunc(ctx, source)
	}
	return service.SeriesDescriptor{}, errors.New("SentimentSeriesFunc not implemented")
}

func (m *MockInsightsService) DistributionSeries(ctx context.Context, source feedback.Source) (service.SeriesDescriptor, error) {
	m.Calls.Add(1)
	if m.DistributionSeriesFunc != nil {
		return m.DistributionSeriesFunc(ctx, source)
	}
	return service.SeriesDescriptor{}, errors.New("DistributionSeriesFunc not implemented")
}

func (m *MockInsightsService) NegativeComments(ctx context.Context, source feedback.Source) ([]string, error) {
	m.Calls.Add(1)
	if m.NegativeCommentsFunc != nil {
		return m.NegativeCommentsFunc(ctx, source)
	}
	return nil, errors.New("NegativeCommentsFunc not implemented")
}

func (m *MockInsightsService) VolumeSeries(ctx context.Context) (service.SeriesDescriptor, error) {
	m.Calls.Add(1)
	if m.VolumeSeriesFunc != nil {
		return m.VolumeSeriesFunc(ctx)
	}
	return service.SeriesDescriptor{}, errors.New("VolumeSeriesFunc not implemented")
}

func (m *MockInsightsService) NetPromoterScore(ctx context.Context) (service.NPSSummary, error) {
	m.Calls.Add(1)
	if m.NetPromoterScoreFunc != nil {
		return m.NetPromoterScoreFunc(ctx)
	}
	return service.NPSSummary{}, errors.New("NetPromoterScoreFunc not implemented")
}

func (m *MockInsightsService) Dashboard(ctx context.Context) (service.Dashboard, error) {
	m.Calls.Add(1)
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx)
	}
	return service.Dashboard{}, errors.New("DashboardFunc not implemented")
}
