package service

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/godilite/feedback-insights/internal/feedback"
)

func TestColorMap(t *testing.T) {
	colors := DefaultColorMap()

	t.Run("total over every category", func(t *testing.T) {
		require.NoError(t, colors.Validate())
		for _, c := range append(append([]feedback.Category{}, feedback.PolarityCategories...), feedback.NPSCategories...) {
			got, err := colors.Lookup(string(c))
			require.NoError(t, err)
			assert.NotEmpty(t, got)
		}
	})

	t.Run("polarity and nps share the palette", func(t *testing.T) {
		assert.Equal(t, colors[feedback.Positive], colors[feedback.Promoter])
		assert.Equal(t, colors[feedback.Neutral], colors[feedback.Passive])
		assert.Equal(t, colors[feedback.Negative], colors[feedback.Detractor])
		assert.Equal(t, "#488A99", colors[feedback.Positive])
		assert.Equal(t, "#DBAE58", colors[feedback.Neutral])
		assert.Equal(t, "#AC3E31", colors[feedback.Negative])
	})

	t.Run("unknown category", func(t *testing.T) {
		got, err := colors.Lookup("unknown")
		assert.Empty(t, got)
		assert.ErrorIs(t, err, feedback.ErrUnknownCategory)
	})

	t.Run("incomplete map fails validation", func(t *testing.T) {
		partial := DefaultColorMap()
		delete(partial, feedback.Passive)
		assert.ErrorIs(t, partial.Validate(), feedback.ErrUnknownCategory)
	})
}

func TestBuildSeries(t *testing.T) {
	rows := []AggregateRow{
		{TimeBucket: "2021-10", Category: feedback.Negative, MeanScore: -0.4},
		{TimeBucket: "2021-08", Category: feedback.Positive, MeanScore: 0.6},
		{TimeBucket: "2021-08", Category: feedback.Negative, MeanScore: -0.5},
		{TimeBucket: "2021-09", Category: feedback.Neutral, MeanScore: 0.0},
	}

	desc, err := BuildSeries(rows, SentimentAxis(feedback.SourceTrustpilot, feedback.PolarityCategories), DefaultColorMap())
	require.NoError(t, err)

	assert.Equal(t, ChartScatter, desc.Kind)
	assert.Equal(t, "date", desc.XField)
	assert.Equal(t, "score", desc.YField)
	assert.Equal(t, "polarity", desc.GroupField)
	assert.Equal(t, []string{"2021-08", "2021-09", "2021-10"}, desc.CategoryOrder)
	assert.Equal(t, "Date [month]", desc.Labels["date"])
	assert.Equal(t, map[string]string{
		"positive": "#488A99",
		"neutral":  "#DBAE58",
		"negative": "#AC3E31",
	}, desc.ColorByCategory)

	require.Len(t, desc.Points, 4)
	assert.Equal(t, Point{X: "2021-08", Y: 0.6, Group: "positive"}, desc.Points[0])
	assert.Equal(t, Point{X: "2021-08", Y: -0.5, Group: "negative"}, desc.Points[1])
	assert.Equal(t, "2021-09", desc.Points[2].X)
	assert.Equal(t, "2021-10", desc.Points[3].X)

	t.Run("twitter uses created_at", func(t *testing.T) {
		desc, err := BuildSeries(rows, SentimentAxis(feedback.SourceTwitter, feedback.PolarityCategories), DefaultColorMap())
		require.NoError(t, err)
		assert.Equal(t, "created_at", desc.XField)
	})

	t.Run("unknown category fails fast", func(t *testing.T) {
		bad := append([]AggregateRow{}, rows...)
		bad = append(bad, AggregateRow{TimeBucket: "2021-08", Category: "unknown", MeanScore: 1})

		desc, err := BuildSeries(bad, SentimentAxis(feedback.SourceTrustpilot, feedback.PolarityCategories), DefaultColorMap())

		require.ErrorIs(t, err, feedback.ErrUnknownCategory)
		var uc *feedback.UnknownCategoryError
		require.ErrorAs(t, err, &uc)
		assert.Equal(t, "unknown", uc.Value)
		assert.Equal(t, "polarity", uc.Field)
		assert.Empty(t, desc.Points)
	})

	t.Run("input rows untouched", func(t *testing.T) {
		assert.Equal(t, "2021-10", rows[0].TimeBucket)
	})
}

func TestBuildVolumeSeries(t *testing.T) {
	axis := VolumeAxis()
	require.Len(t, axis.CategoryOrder, 12)

	var rows []VolumeRow
	for _, f := range feedback.ProductFamilies {
		rows = append(rows,
			VolumeRow{TimeBucket: "2021-08-S2", Category: feedback.Promoter, ProductFamily: f, Total: 10},
			VolumeRow{TimeBucket: "2021-08-S1", Category: feedback.Detractor, ProductFamily: f, Total: 3},
			VolumeRow{TimeBucket: "2021-08-S1", Category: feedback.Promoter, ProductFamily: f, Total: 5},
		)
	}

	t.Run("fixed family order regardless of input order", func(t *testing.T) {
		for seed := int64(1); seed <= 5; seed++ {
			shuffled := append([]VolumeRow(nil), rows...)
			rand.New(rand.NewSource(seed)).Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			desc, err := BuildVolumeSeries(shuffled, axis, DefaultColorMap())
			require.NoError(t, err)

			assert.Equal(t, axis.CategoryOrder, desc.CategoryOrder)
			assert.Equal(t, []string{"2021-08-S1", "2021-08-S2"}, desc.Frames)

			// Within the first frame families follow the fixed order,
			// promoters before detractors.
			first := desc.Points[:24]
			for i, fam := range feedback.ProductFamilies {
				assert.Equal(t, string(fam), first[2*i].X)
				assert.Equal(t, "Promoter", first[2*i].Group)
				assert.Equal(t, "Detractor", first[2*i+1].Group)
			}
			for _, p := range desc.Points[24:] {
				assert.Equal(t, "2021-08-S2", p.Frame)
			}
		}
	})

	t.Run("order kept even when families are missing from data", func(t *testing.T) {
		desc, err := BuildVolumeSeries(rows[:3], axis, DefaultColorMap())
		require.NoError(t, err)
		assert.Equal(t, axis.CategoryOrder, desc.CategoryOrder)
		assert.Equal(t, "semaine_mois", desc.FrameField)
		assert.Equal(t, "Customer category", desc.Labels["nps_respondent"])
	})

	t.Run("family outside the order", func(t *testing.T) {
		extra := append([]VolumeRow{}, rows[:3]...)
		extra = append(extra, VolumeRow{TimeBucket: "2021-08-S1", Category: feedback.Passive, ProductFamily: "Jouets", Total: 1})

		_, err := BuildVolumeSeries(extra, axis, DefaultColorMap())

		var uc *feedback.UnknownCategoryError
		require.ErrorAs(t, err, &uc)
		assert.Equal(t, "family", uc.Field)
		assert.Equal(t, "Jouets", uc.Value)
	})
}

func TestBuildDistributionSeries(t *testing.T) {
	counts := []CategoryCount{
		{Category: feedback.Negative, Count: 12},
		{Category: feedback.Positive, Count: 30},
	}

	desc, err := BuildDistributionSeries(counts, DistributionAxis(feedback.SourceTwitter.Categories()), DefaultColorMap())
	require.NoError(t, err)

	assert.Equal(t, ChartHistogram, desc.Kind)
	assert.Equal(t, []string{"positive", "neutral", "negative"}, desc.CategoryOrder)
	require.Len(t, desc.Points, 2)
	assert.Equal(t, Point{X: "positive", Y: 30, Group: "positive"}, desc.Points[0])
	assert.Equal(t, Point{X: "negative", Y: 12, Group: "negative"}, desc.Points[1])

	t.Run("survey uses respondent classes", func(t *testing.T) {
		axis := DistributionAxis(feedback.SourceSurvey.Categories())
		assert.Equal(t, []string{"Promoter", "Passive", "Detractor"}, axis.CategoryOrder)
		assert.Equal(t, "nps_respondent", axis.XField)
	})

	t.Run("polarity labelled survey", func(t *testing.T) {
		axis := DistributionAxis(feedback.PolarityCategories)
		assert.Equal(t, []string{"positive", "neutral", "negative"}, axis.CategoryOrder)
		assert.Equal(t, "polarity", axis.XField)

		scatter := SentimentAxis(feedback.SourceSurvey, feedback.PolarityCategories)
		assert.Equal(t, "polarity", scatter.GroupField)
		assert.Equal(t, "date", scatter.XField)
	})
}
