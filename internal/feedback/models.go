package feedback

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Source identifies one of the feedback channels.
type Source string

const (
	SourceSurvey      Source = "survey"
	SourceTransaction Source = "transaction"
	SourceTrustpilot  Source = "trustpilot"
	SourceTwitter     Source = "twitter"
)

// Sources lists every source in display order.
var Sources = []Source{SourceSurvey, SourceTransaction, SourceTrustpilot, SourceTwitter}

// ParseSource resolves a case-insensitive source name.
func ParseSource(name string) (Source, error) {
	s := Source(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Sources {
		if s == known {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, name)
}

// Category is either a polarity or an NPS respondent class.
type Category string

const (
	Positive Category = "positive"
	Neutral  Category = "neutral"
	Negative Category = "negative"

	Promoter  Category = "Promoter"
	Passive   Category = "Passive"
	Detractor Category = "Detractor"
)

var (
	PolarityCategories = []Category{Positive, Neutral, Negative}
	NPSCategories      = []Category{Promoter, Passive, Detractor}
)

// IsNPS reports whether set holds NPS respondent classes.
func IsNPS(set []Category) bool {
	return slices.Contains(set, Promoter)
}

// CategoryField names the column a category set is read from.
func CategoryField(set []Category) string {
	if IsNPS(set) {
		return "nps_respondent"
	}
	return "polarity"
}

// Categories returns the default category set for the source.
func (s Source) Categories() []Category {
	switch s {
	case SourceSurvey, SourceTransaction:
		return NPSCategories
	default:
		return PolarityCategories
	}
}

// Accepts reports whether c belongs to the source's default category set.
func (s Source) Accepts(c Category) bool {
	return slices.Contains(s.Categories(), c)
}

// ProductFamily is one of the twelve marketplace product families.
type ProductFamily string

// ProductFamilies is the display order used on categorical axes.
var ProductFamilies = []ProductFamily{
	"Jardin piscine",
	"Outillage",
	"Mobilier d'intérieur",
	"Plomberie chauffage",
	"Salle de bain, WC",
	"Quincaillerie",
	"Electricité",
	"Luminaire",
	"Animalerie",
	"Revêtement sol et mur",
	"Cuisine",
	"Construction matériaux",
}

// IsKnown reports whether f is one of ProductFamilies.
func (f ProductFamily) IsKnown() bool {
	for _, known := range ProductFamilies {
		if f == known {
			return true
		}
	}
	return false
}

// Record is a single customer interaction.
type Record struct {
	Source        Source
	Timestamp     time.Time
	Bucket        string
	Text          string
	Category      Category
	Score         float64
	ProductFamily ProductFamily
}

// Table holds the records of one source in input order. Labels is the
// category set the records were read with; nil means the source's default.
// Tables are never modified once loaded.
type Table struct {
	Source  Source
	Labels  []Category
	Records []Record
}

// Categories returns the category set of the table's records.
func (t *Table) Categories() []Category {
	if t == nil {
		return nil
	}
	if len(t.Labels) > 0 {
		return t.Labels
	}
	return t.Source.Categories()
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}
