package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// Selection holds the curated comment positions per source. Positions index
// the ranked comments (0 = most negative) and are kept in the order listed.
type Selection struct {
	Positions map[feedback.Source][]int `yaml:"positions"`
}

// DefaultSelection returns the editorial positions picked for each
// comment tab.
func DefaultSelection() *Selection {
	return &Selection{
		Positions: map[feedback.Source][]int{
			feedback.SourceSurvey:     {0, 1, 4, 5, 7, 10, 12, 14},
			feedback.SourceTrustpilot: {2, 3, 4, 5, 14},
			feedback.SourceTwitter:    {0, 2, 3, 5, 8},
		},
	}
}

// LoadSelection reads positions from a YAML file. An empty path yields
// the defaults.
func LoadSelection(path string) (*Selection, error) {
	if path == "" {
		return DefaultSelection(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selection config: %w", err)
	}
	return ParseSelection(data)
}

// ParseSelection decodes and validates a YAML selection document.
func ParseSelection(data []byte) (*Selection, error) {
	var raw struct {
		Positions map[string][]int `yaml:"positions"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse selection config: %w", err)
	}

	sel := &Selection{Positions: make(map[feedback.Source][]int, len(raw.Positions))}
	for name, positions := range raw.Positions {
		source, err := feedback.ParseSource(name)
		if err != nil {
			return nil, fmt.Errorf("selection config: %w", err)
		}
		for _, p := range positions {
			if p < 0 {
				return nil, fmt.Errorf("selection config: negative position %d for %s", p, source)
			}
		}
		sel.Positions[source] = positions
	}
	return sel, nil
}

// For returns a copy of the positions configured for source.
func (s *Selection) For(source feedback.Source) []int {
	if s == nil {
		return nil
	}
	return append([]int(nil), s.Positions[source]...)
}

// BySource copies the positions of every source that has any.
func (s *Selection) BySource() map[feedback.Source][]int {
	out := make(map[feedback.Source][]int, len(feedback.Sources))
	for _, src := range feedback.Sources {
		if positions := s.For(src); len(positions) > 0 {
			out[src] = positions
		}
	}
	return out
}
