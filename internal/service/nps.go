package service

import (
	"fmt"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// NetPromoterScore is the share of promoters minus the share of detractors,
// in percentage points.
func NetPromoterScore(table *feedback.Table) (NPSSummary, error) {
	if table.Len() == 0 {
		return NPSSummary{}, feedback.ErrNoRecords
	}
	if !feedback.IsNPS(table.Categories()) {
		return NPSSummary{}, fmt.Errorf("net promoter score for %s: %w", table.Source, ErrNoRespondents)
	}

	counts := map[feedback.Category]int{
		feedback.Promoter:  0,
		feedback.Passive:   0,
		feedback.Detractor: 0,
	}
	for _, r := range table.Records {
		if _, ok := counts[r.Category]; !ok {
			return NPSSummary{}, fmt.Errorf("net promoter score: %w", &feedback.UnknownCategoryError{Field: "nps_respondent", Value: string(r.Category)})
		}
		counts[r.Category]++
	}

	n := float64(table.Len())
	score := (float64(counts[feedback.Promoter]) - float64(counts[feedback.Detractor])) / n * 100

	return NPSSummary{
		Kind:       ChartIndicator,
		Score:      score,
		Responses:  table.Len(),
		ByCategory: counts,
		AxisMin:    -100,
		AxisMax:    100,
		Steps: []GaugeStep{
			{From: -100, To: 0, Color: colorRed},
			{From: 0, To: 50, Color: colorGold},
			{From: 50, To: 100, Color: colorTeal},
		},
	}, nil
}
