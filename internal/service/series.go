package service

import (
	"sort"

	"github.com/godilite/feedback-insights/internal/feedback"
)

const (
	colorTeal = "#488A99"
	colorGold = "#DBAE58"
	colorRed  = "#AC3E31"
)

// ColorMap assigns a fixed color to every category.
type ColorMap map[feedback.Category]string

// DefaultColorMap uses the same palette for polarity and NPS classes.
func DefaultColorMap() ColorMap {
	return ColorMap{
		feedback.Positive:  colorTeal,
		feedback.Neutral:   colorGold,
		feedback.Negative:  colorRed,
		feedback.Promoter:  colorTeal,
		feedback.Passive:   colorGold,
		feedback.Detractor: colorRed,
	}
}

// Lookup fails on any value without a color rather than guessing one.
func (m ColorMap) Lookup(value string) (string, error) {
	c, ok := m[feedback.Category(value)]
	if !ok || c == "" {
		return "", &feedback.UnknownCategoryError{Field: "color", Value: value}
	}
	return c, nil
}

// Validate checks the map covers every category of every source.
func (m ColorMap) Validate() error {
	for _, set := range [][]feedback.Category{feedback.PolarityCategories, feedback.NPSCategories} {
		for _, c := range set {
			if _, err := m.Lookup(string(c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// AxisSpec describes how rows map onto a chart. CategoryOrder, when set,
// fixes the order of the X axis.
type AxisSpec struct {
	Kind          ChartKind
	Title         string
	XField        string
	YField        string
	GroupField    string
	FrameField    string
	CategoryOrder []string
	Labels        map[string]string
}

// BuildSeries charts mean scores over time, one series per category.
func BuildSeries(rows []AggregateRow, axis AxisSpec, colors ColorMap) (SeriesDescriptor, error) {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{X: r.TimeBucket, Y: r.MeanScore, Group: string(r.Category)}
	}
	return buildDescriptor(points, axis, colors)
}

// BuildVolumeSeries charts business volume by product family, one frame
// per time bucket.
func BuildVolumeSeries(rows []VolumeRow, axis AxisSpec, colors ColorMap) (SeriesDescriptor, error) {
	points := make([]Point, len(rows))
	for i, r := range rows {
		points[i] = Point{X: string(r.ProductFamily), Y: r.Total, Group: string(r.Category), Frame: r.TimeBucket}
	}
	return buildDescriptor(points, axis, colors)
}

// BuildDistributionSeries charts the number of records per category.
func BuildDistributionSeries(counts []CategoryCount, axis AxisSpec, colors ColorMap) (SeriesDescriptor, error) {
	points := make([]Point, len(counts))
	for i, c := range counts {
		points[i] = Point{X: string(c.Category), Y: float64(c.Count), Group: string(c.Category)}
	}
	return buildDescriptor(points, axis, colors)
}

func buildDescriptor(points []Point, axis AxisSpec, colors ColorMap) (SeriesDescriptor, error) {
	desc := SeriesDescriptor{
		Kind:            axis.Kind,
		Title:           axis.Title,
		XField:          axis.XField,
		YField:          axis.YField,
		GroupField:      axis.GroupField,
		FrameField:      axis.FrameField,
		ColorByCategory: make(map[string]string),
		Labels:          copyLabels(axis.Labels),
	}

	for _, p := range points {
		if _, done := desc.ColorByCategory[p.Group]; done {
			continue
		}
		c, err := colors.Lookup(p.Group)
		if err != nil {
			return SeriesDescriptor{}, &feedback.UnknownCategoryError{Field: axis.GroupField, Value: p.Group}
		}
		desc.ColorByCategory[p.Group] = c
	}

	position := make(map[string]int)
	if len(axis.CategoryOrder) > 0 {
		desc.CategoryOrder = append([]string(nil), axis.CategoryOrder...)
		for i, v := range desc.CategoryOrder {
			position[v] = i
		}
		for _, p := range points {
			if _, ok := position[p.X]; !ok {
				return SeriesDescriptor{}, &feedback.UnknownCategoryError{Field: axis.XField, Value: p.X}
			}
		}
	} else {
		desc.CategoryOrder = distinctSorted(points, func(p Point) string { return p.X })
		for i, v := range desc.CategoryOrder {
			position[v] = i
		}
	}

	if axis.FrameField != "" {
		desc.Frames = distinctSorted(points, func(p Point) string { return p.Frame })
	}

	sorted := append([]Point(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Frame != b.Frame {
			return a.Frame < b.Frame
		}
		if position[a.X] != position[b.X] {
			return position[a.X] < position[b.X]
		}
		return groupRank(a.Group) < groupRank(b.Group)
	})
	desc.Points = sorted

	return desc, nil
}

// groupRank orders series teal, gold, red within each category set.
func groupRank(group string) int {
	for _, set := range [][]feedback.Category{feedback.PolarityCategories, feedback.NPSCategories} {
		for i, c := range set {
			if string(c) == group {
				return i
			}
		}
	}
	return len(feedback.PolarityCategories)
}

func distinctSorted(points []Point, field func(Point) string) []string {
	seen := make(map[string]bool, len(points))
	out := make([]string, 0)
	for _, p := range points {
		v := field(p)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

func copyLabels(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Chart presets matching the dashboard tabs.

func timeField(source feedback.Source) string {
	switch source {
	case feedback.SourceTwitter:
		return "created_at"
	case feedback.SourceTransaction:
		return "semaine_mois"
	default:
		return "date"
	}
}

// SentimentAxis is the scatter of mean sentiment per month, one series
// per category of the given set.
func SentimentAxis(source feedback.Source, categories []feedback.Category) AxisSpec {
	x := timeField(source)
	return AxisSpec{
		Kind:       ChartScatter,
		XField:     x,
		YField:     "score",
		GroupField: feedback.CategoryField(categories),
		Labels:     map[string]string{x: "Date [month]", "score": "Sentiment score"},
	}
}

// DistributionAxis is the histogram of records per category, in the
// order of the given set.
func DistributionAxis(categories []feedback.Category) AxisSpec {
	order := make([]string, len(categories))
	for i, c := range categories {
		order[i] = string(c)
	}
	g := feedback.CategoryField(categories)
	return AxisSpec{
		Kind:          ChartHistogram,
		XField:        g,
		YField:        "count",
		GroupField:    g,
		CategoryOrder: order,
	}
}

// VolumeAxis is the animated bar chart of business volume by family.
func VolumeAxis() AxisSpec {
	order := make([]string, len(feedback.ProductFamilies))
	for i, f := range feedback.ProductFamilies {
		order[i] = string(f)
	}
	return AxisSpec{
		Kind:          ChartBar,
		Title:         "Business volume by product family and customer group over time",
		XField:        "family",
		YField:        "bv_transaction",
		GroupField:    "nps_respondent",
		FrameField:    "semaine_mois",
		CategoryOrder: order,
		Labels: map[string]string{
			"nps_respondent": "Customer category",
			"family":         "Family",
			"bv_transaction": "Business volume (total)",
		},
	}
}
