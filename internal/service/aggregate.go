package service

import "github.com/godilite/feedback-insights/internal/feedback"

type groupKey struct {
	bucket   string
	category feedback.Category
	family   feedback.ProductFamily
}

// AggregateMean returns one row per (time bucket, category) present in the
// table, carrying the arithmetic mean of the scores. Rows come out in the
// order their group is first seen.
func AggregateMean(table *feedback.Table) []AggregateRow {
	if table.Len() == 0 {
		return nil
	}

	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[groupKey]*acc)
	order := make([]groupKey, 0)

	for _, r := range table.Records {
		k := groupKey{bucket: r.Bucket, category: r.Category}
		g, ok := groups[k]
		if !ok {
			g = &acc{}
			groups[k] = g
			order = append(order, k)
		}
		g.sum += r.Score
		g.count++
	}

	rows := make([]AggregateRow, 0, len(order))
	for _, k := range order {
		g := groups[k]
		rows = append(rows, AggregateRow{
			TimeBucket: k.bucket,
			Category:   k.category,
			MeanScore:  g.sum / float64(g.count),
		})
	}
	return rows
}

// AggregateVolume sums scores as business volume per
// (time bucket, category, product family). Records without a family are skipped.
func AggregateVolume(table *feedback.Table) []VolumeRow {
	if table.Len() == 0 {
		return nil
	}

	totals := make(map[groupKey]float64)
	order := make([]groupKey, 0)

	for _, r := range table.Records {
		if r.ProductFamily == "" {
			continue
		}
		k := groupKey{bucket: r.Bucket, category: r.Category, family: r.ProductFamily}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] += r.Score
	}

	rows := make([]VolumeRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, VolumeRow{
			TimeBucket:    k.bucket,
			Category:      k.category,
			ProductFamily: k.family,
			Total:         totals[k],
		})
	}
	return rows
}

// CountByCategory counts records per category, in first-seen order.
func CountByCategory(table *feedback.Table) []CategoryCount {
	if table.Len() == 0 {
		return nil
	}

	counts := make(map[feedback.Category]int)
	order := make([]feedback.Category, 0, 3)
	for _, r := range table.Records {
		if _, ok := counts[r.Category]; !ok {
			order = append(order, r.Category)
		}
		counts[r.Category]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}
