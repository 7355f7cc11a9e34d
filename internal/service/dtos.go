package service

import "github.com/godilite/feedback-insights/internal/feedback"

// AggregateRow is the mean score of one (time bucket, category) group.
type AggregateRow struct {
	TimeBucket string            `json:"time_bucket"`
	Category   feedback.Category `json:"category"`
	MeanScore  float64           `json:"mean_score"`
}

// VolumeRow is the summed business volume of one
// (time bucket, category, product family) group.
type VolumeRow struct {
	TimeBucket    string                 `json:"time_bucket"`
	Category      feedback.Category      `json:"category"`
	ProductFamily feedback.ProductFamily `json:"product_family"`
	Total         float64                `json:"total"`
}

type CategoryCount struct {
	Category feedback.Category `json:"category"`
	Count    int               `json:"count"`
}

type ChartKind string

const (
	ChartScatter   ChartKind = "scatter"
	ChartBar       ChartKind = "bar"
	ChartHistogram ChartKind = "histogram"
	ChartIndicator ChartKind = "indicator"
)

// Point is one plotted value. Frame is set only on animated charts.
type Point struct {
	X     string  `json:"x"`
	Y     float64 `json:"y"`
	Group string  `json:"group"`
	Frame string  `json:"frame,omitempty"`
}

// SeriesDescriptor is a renderer-neutral chart definition.
type SeriesDescriptor struct {
	Kind            ChartKind         `json:"kind"`
	Title           string            `json:"title,omitempty"`
	XField          string            `json:"x_field"`
	YField          string            `json:"y_field"`
	GroupField      string            `json:"group_field"`
	FrameField      string            `json:"frame_field,omitempty"`
	CategoryOrder   []string          `json:"category_order"`
	ColorByCategory map[string]string `json:"color_by_category"`
	Labels          map[string]string `json:"labels,omitempty"`
	Frames          []string          `json:"frames,omitempty"`
	Points          []Point           `json:"points"`
}

type GaugeStep struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Color string  `json:"color"`
}

// NPSSummary is the net promoter score of the survey responses.
type NPSSummary struct {
	Kind       ChartKind                 `json:"kind"`
	Score      float64                   `json:"score"`
	Responses  int                       `json:"responses"`
	ByCategory map[feedback.Category]int `json:"by_category"`
	AxisMin    float64                   `json:"axis_min"`
	AxisMax    float64                   `json:"axis_max"`
	Steps      []GaugeStep               `json:"steps"`
}

// SourceInsights groups the per-source charts of a review or survey tab.
type SourceInsights struct {
	Source           feedback.Source  `json:"source"`
	Sentiment        SeriesDescriptor `json:"sentiment"`
	Distribution     SeriesDescriptor `json:"distribution"`
	NegativeComments []string         `json:"negative_comments"`
}

// Dashboard is everything the presentation layer renders. Sources that
// failed to load are listed in Errors and absent elsewhere.
type Dashboard struct {
	NPS     *NPSSummary                `json:"nps,omitempty"`
	Volume  *SeriesDescriptor          `json:"volume,omitempty"`
	Sources []SourceInsights           `json:"sources"`
	Errors  map[feedback.Source]string `json:"errors,omitempty"`
}
