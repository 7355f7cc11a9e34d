package service

import (
	"sort"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// RankedComments holds texts in ascending score order. Index 0 is the most
// negative comment.
type RankedComments struct {
	texts []string
}

// RankNegative stable-sorts the table by score so equal scores keep
// their table order.
func RankNegative(table *feedback.Table) RankedComments {
	if table.Len() == 0 {
		return RankedComments{}
	}

	idx := make([]int, len(table.Records))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return table.Records[idx[a]].Score < table.Records[idx[b]].Score
	})

	texts := make([]string, len(idx))
	for i, j := range idx {
		texts[i] = table.Records[j].Text
	}
	return RankedComments{texts: texts}
}

func (r RankedComments) Len() int { return len(r.texts) }

// At returns the text at position i.
func (r RankedComments) At(i int) (string, error) {
	if i < 0 || i >= len(r.texts) {
		return "", &feedback.IndexError{Position: i, Len: len(r.texts)}
	}
	return r.texts[i], nil
}

// Texts returns a copy of the ranked sequence.
func (r RankedComments) Texts() []string {
	out := make([]string, len(r.texts))
	copy(out, r.texts)
	return out
}

// Select returns the texts at the given positions, in the order given.
// A single out-of-range position fails the whole selection.
func Select(ranked RankedComments, positions []int) ([]string, error) {
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		text, err := ranked.At(p)
		if err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, nil
}
