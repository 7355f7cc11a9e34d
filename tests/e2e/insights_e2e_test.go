//go:build e2e

package e2e

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/godilite/feedback-insights/internal/feedback"
	"github.com/godilite/feedback-insights/internal/grpc"
	"github.com/godilite/feedback-insights/internal/repository"
	"github.com/godilite/feedback-insights/internal/service"
	"github.com/godilite/feedback-insights/tests/e2e/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const surveyCSV = `date,nps_respondent,score,comment
2024-01-05,Promoter,0.9,Great tools
2024-01-20,Detractor,-0.8,Delivery was late
2024-02-02,Promoter,0.6,Helpful staff
2024-02-14,Passive,0.1,Okay overall
`

const transactionCSV = `semaine_mois,nps_respondent,bv_transaction,comment,family
2021-08-S1,Promoter,40,,Outillage
2021-08-S1,Promoter,60,,Outillage
2021-08-S2,Detractor,12,,Cuisine
`

const trustpilotCSV = `date,polarity,score,text
2024-03-01,negative,-0.9,"Never again, awful"
2024-03-10,neutral,-0.1,It was fine
2024-04-02,positive,0.7,Loved it
`

const twitterCSV = `created_at,polarity,score,text
2024-01-03 10:00:00,negative,-0.6,Worst app ever
2024-01-15 09:00:00,negative,-0.2,Slow checkout
2024-01-20 12:00:00,positive,0.8,Fast shipping
2024-02-01 08:00:00,positive,0.4,Nice promo
`

var defaultPositions = map[feedback.Source][]int{
	feedback.SourceSurvey:     {1, 0},
	feedback.SourceTrustpilot: {1},
	feedback.SourceTwitter:    {0, 2},
}

func writeFixtures(t *testing.T) map[feedback.Source]string {
	t.Helper()
	dir := t.TempDir()
	files := map[feedback.Source]struct{ name, body string }{
		feedback.SourceSurvey:      {"survey.csv", surveyCSV},
		feedback.SourceTransaction: {"transactions.csv", transactionCSV},
		feedback.SourceTrustpilot:  {"trustpilot.csv", trustpilotCSV},
		feedback.SourceTwitter:     {"twitter.csv", twitterCSV},
	}
	handles := make(map[feedback.Source]string, len(files))
	for src, f := range files {
		path := filepath.Join(dir, f.name)
		require.NoError(t, os.WriteFile(path, []byte(f.body), 0o600))
		handles[src] = path
	}
	return handles
}

func newHandlers(t *testing.T, handles map[feedback.Source]string, positions map[feedback.Source][]int) (*grpc.GRPCHandlers, *mocks.InMemoryCache) {
	t.Helper()
	logger := zap.NewNop()
	repo := repository.NewFeedbackTableRepository(nil)
	insights := service.NewInsightsService(repo, handles, positions, logger)
	cache := mocks.NewInMemoryCache()
	return grpc.NewGRPCHandlers(insights, cache, logger, time.Minute), cache
}

func listStrings(list *structpb.ListValue) []string {
	out := make([]string, 0, len(list.GetValues()))
	for _, v := range list.GetValues() {
		out = append(out, v.GetStringValue())
	}
	return out
}

func TestE2E_SentimentSeries(t *testing.T) {
	handlers, _ := newHandlers(t, writeFixtures(t), defaultPositions)

	resp, err := handlers.GetSentimentSeries(context.Background(), wrapperspb.String("twitter"))
	require.NoError(t, err)

	assert.Equal(t, "scatter", resp.Fields["kind"].GetStringValue())
	assert.Equal(t, "created_at", resp.Fields["x_field"].GetStringValue())

	type point struct {
		x, group string
		y        float64
	}
	var got []point
	for _, v := range resp.Fields["points"].GetListValue().GetValues() {
		f := v.GetStructValue().GetFields()
		got = append(got, point{f["x"].GetStringValue(), f["group"].GetStringValue(), f["y"].GetNumberValue()})
	}
	require.Len(t, got, 3)

	means := make(map[string]float64)
	for _, p := range got {
		means[p.x+"/"+p.group] = p.y
	}
	assert.InDelta(t, -0.4, means["2024-01/negative"], 1e-9)
	assert.InDelta(t, 0.8, means["2024-01/positive"], 1e-9)
	assert.InDelta(t, 0.4, means["2024-02/positive"], 1e-9)

	t.Run("transaction has no sentiment chart", func(t *testing.T) {
		_, err := handlers.GetSentimentSeries(context.Background(), wrapperspb.String("transaction"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestE2E_CategoryDistribution(t *testing.T) {
	handlers, _ := newHandlers(t, writeFixtures(t), defaultPositions)

	resp, err := handlers.GetCategoryDistribution(context.Background(), wrapperspb.String("survey"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Promoter", "Passive", "Detractor"}, listStrings(resp.Fields["category_order"].GetListValue()))

	counts := make(map[string]float64)
	for _, v := range resp.Fields["points"].GetListValue().GetValues() {
		f := v.GetStructValue().GetFields()
		counts[f["x"].GetStringValue()] = f["y"].GetNumberValue()
	}
	assert.Equal(t, map[string]float64{"Promoter": 2, "Passive": 1, "Detractor": 1}, counts)
}

func TestE2E_NegativeComments(t *testing.T) {
	handlers, _ := newHandlers(t, writeFixtures(t), defaultPositions)

	t.Run("twitter", func(t *testing.T) {
		resp, err := handlers.GetNegativeComments(context.Background(), wrapperspb.String("twitter"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Worst app ever", "Nice promo"}, listStrings(resp))
	})

	t.Run("positions keep their configured order", func(t *testing.T) {
		resp, err := handlers.GetNegativeComments(context.Background(), wrapperspb.String("survey"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Okay overall", "Delivery was late"}, listStrings(resp))
	})

	t.Run("quoted commas survive", func(t *testing.T) {
		resp, err := handlers.GetNegativeComments(context.Background(), wrapperspb.String("trustpilot"))
		require.NoError(t, err)
		assert.Equal(t, []string{"It was fine"}, listStrings(resp))
	})

	t.Run("position past the end", func(t *testing.T) {
		short, _ := newHandlers(t, writeFixtures(t), map[feedback.Source][]int{feedback.SourceTwitter: {0, 14}})
		_, err := short.GetNegativeComments(context.Background(), wrapperspb.String("twitter"))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		assert.Contains(t, err.Error(), "position 14")
	})
}

func TestE2E_VolumeSeries(t *testing.T) {
	handlers, _ := newHandlers(t, writeFixtures(t), defaultPositions)

	resp, err := handlers.GetVolumeSeries(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	assert.Equal(t, "bar", resp.Fields["kind"].GetStringValue())
	assert.Equal(t, []string{"2021-08-S1", "2021-08-S2"}, listStrings(resp.Fields["frames"].GetListValue()))
	assert.Len(t, resp.Fields["category_order"].GetListValue().GetValues(), len(feedback.ProductFamilies))

	totals := make(map[string]float64)
	for _, v := range resp.Fields["points"].GetListValue().GetValues() {
		f := v.GetStructValue().GetFields()
		totals[f["frame"].GetStringValue()+"/"+f["x"].GetStringValue()] = f["y"].GetNumberValue()
	}
	assert.Equal(t, map[string]float64{"2021-08-S1/Outillage": 100, "2021-08-S2/Cuisine": 12}, totals)
}

func TestE2E_NetPromoterScore(t *testing.T) {
	handlers, _ := newHandlers(t, writeFixtures(t), defaultPositions)

	resp, err := handlers.GetNetPromoterScore(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)

	assert.Equal(t, "indicator", resp.Fields["kind"].GetStringValue())
	assert.Equal(t, 25.0, resp.Fields["score"].GetNumberValue())
	assert.Equal(t, 4.0, resp.Fields["responses"].GetNumberValue())
	assert.Len(t, resp.Fields["steps"].GetListValue().GetValues(), 3)
}

func TestE2E_PolarityLabelledSurvey(t *testing.T) {
	handles := writeFixtures(t)
	path := filepath.Join(t.TempDir(), "dataset_sentiment_final.csv")
	require.NoError(t, os.WriteFile(path, []byte(`,date,comment,polarity,score
0,2021-08,tres bien,positive,0.9
1,2021-08,livraison en retard,negative,-0.7
2,2021-09,moyen,neutral,0.0
`), 0o600))
	handles[feedback.SourceSurvey] = path
	handlers, _ := newHandlers(t, handles, defaultPositions)

	resp, err := handlers.GetCategoryDistribution(context.Background(), wrapperspb.String("survey"))
	require.NoError(t, err)
	assert.Equal(t, []string{"positive", "neutral", "negative"}, listStrings(resp.Fields["category_order"].GetListValue()))

	comments, err := handlers.GetNegativeComments(context.Background(), wrapperspb.String("survey"))
	require.NoError(t, err)
	assert.Equal(t, []string{"moyen", "livraison en retard"}, listStrings(comments))

	_, err = handlers.GetNetPromoterScore(context.Background(), &emptypb.Empty{})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	dash, err := handlers.GetDashboard(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.NotContains(t, dash.Fields, "errors")
	assert.NotContains(t, dash.Fields, "nps")
}

func TestE2E_Dashboard(t *testing.T) {
	t.Run("all sources load", func(t *testing.T) {
		handlers, cache := newHandlers(t, writeFixtures(t), defaultPositions)

		resp, err := handlers.GetDashboard(context.Background(), &emptypb.Empty{})
		require.NoError(t, err)

		assert.Contains(t, resp.Fields, "nps")
		assert.Contains(t, resp.Fields, "volume")
		assert.NotContains(t, resp.Fields, "errors")
		assert.Len(t, resp.Fields["sources"].GetListValue().GetValues(), 3)

		assert.Eventually(t, func() bool {
			return cache.SetCalls() == 1
		}, time.Second, 10*time.Millisecond)
		assert.Equal(t, []string{"grpc:dashboard"}, cache.Keys())
	})

	t.Run("a missing file only drops its source", func(t *testing.T) {
		handles := writeFixtures(t)
		handles[feedback.SourceTrustpilot] = filepath.Join(t.TempDir(), "missing.csv")
		handlers, _ := newHandlers(t, handles, defaultPositions)

		resp, err := handlers.GetDashboard(context.Background(), &emptypb.Empty{})
		require.NoError(t, err)

		errs := resp.Fields["errors"].GetStructValue().GetFields()
		assert.Contains(t, errs, "trustpilot")
		assert.Len(t, errs, 1)
		assert.Len(t, resp.Fields["sources"].GetListValue().GetValues(), 2)

		_, err = handlers.GetCategoryDistribution(context.Background(), wrapperspb.String("trustpilot"))
		assert.Equal(t, codes.Unavailable, status.Code(err))
	})
}
