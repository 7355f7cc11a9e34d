package repository

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// labelColumn is a category column and the values it may hold.
type labelColumn struct {
	Name string
	Set  []feedback.Category
}

var (
	npsColumn      = labelColumn{Name: "nps_respondent", Set: feedback.NPSCategories}
	polarityColumn = labelColumn{Name: "polarity", Set: feedback.PolarityCategories}
)

// schema names the columns a source's table carries. The first entry of
// Categories found in the header is the one read.
type schema struct {
	Time       string
	Categories []labelColumn
	Score      string
	Text       string
	Family     string
}

var schemas = map[feedback.Source]schema{
	feedback.SourceSurvey: {
		Time:       "date",
		Categories: []labelColumn{npsColumn, polarityColumn},
		Score:      "score",
		Text:       "comment",
	},
	feedback.SourceTransaction: {
		Time:       "semaine_mois",
		Categories: []labelColumn{npsColumn},
		Score:      "bv_transaction",
		Text:       "comment",
		Family:     "family",
	},
	feedback.SourceTrustpilot: {
		Time:       "date",
		Categories: []labelColumn{polarityColumn},
		Score:      "score",
		Text:       "text",
	},
	feedback.SourceTwitter: {
		Time:       "created_at",
		Categories: []labelColumn{polarityColumn},
		Score:      "score",
		Text:       "text",
	},
}

func (s schema) required() []string {
	cols := []string{s.Time, s.Score}
	if s.Family != "" {
		cols = append(cols, s.Family)
	}
	return cols
}

// pickLabel picks the category column present in the header.
func (s schema) pickLabel(index map[string]int) (labelColumn, error) {
	for _, col := range s.Categories {
		if _, ok := index[col.Name]; ok {
			return col, nil
		}
	}
	names := make([]string, len(s.Categories))
	for i, col := range s.Categories {
		names[i] = col.Name
	}
	return labelColumn{}, fmt.Errorf("%w: %s", errMissingColumn, strings.Join(names, " or "))
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
}

var (
	// weekInMonth matches labels such as "2021-08-S2".
	weekInMonth = regexp.MustCompile(`^(\d{4}-\d{2})[-_ ]?[SsWw](\d)$`)
	// monthPrefix matches any other label that starts with a month, such
	// as "2021-08 semaine 2".
	monthPrefix = regexp.MustCompile(`^(\d{4}-\d{2})(?:\D|$)`)
)

var (
	errMissingColumn = errors.New("missing required column")
	errEmptyValue    = errors.New("empty value")
)

// decodeTable coerces raw string cells into typed records for the source.
// header and rows come straight from the underlying reader.
func decodeTable(source feedback.Source, handle string, header []string, rows [][]string) (*feedback.Table, error) {
	sc, ok := schemas[source]
	if !ok {
		return nil, &feedback.LoadError{Source: source, Handle: handle, Err: feedback.ErrUnknownSource}
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}
	for _, col := range sc.required() {
		if _, ok := index[col]; !ok {
			return nil, &feedback.LoadError{Source: source, Handle: handle, Column: col, Err: errMissingColumn}
		}
	}
	label, err := sc.pickLabel(index)
	if err != nil {
		return nil, &feedback.LoadError{Source: source, Handle: handle, Column: sc.Categories[0].Name, Err: err}
	}

	cell := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	table := &feedback.Table{Source: source, Labels: label.Set, Records: make([]feedback.Record, 0, len(rows))}
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		line := i + 2
		fail := func(col string, err error) error {
			return &feedback.LoadError{Source: source, Handle: handle, Column: col, Row: line, Err: err}
		}

		rec := feedback.Record{Source: source, Text: cell(row, sc.Text)}

		if source == feedback.SourceTransaction {
			rec.Timestamp, rec.Bucket, err = parseWeekBucket(cell(row, sc.Time))
		} else {
			rec.Timestamp, rec.Bucket, err = parseMonthBucket(cell(row, sc.Time))
		}
		if err != nil {
			return nil, fail(sc.Time, err)
		}

		rec.Category = feedback.Category(cell(row, label.Name))
		if !slices.Contains(label.Set, rec.Category) {
			return nil, fail(label.Name, &feedback.UnknownCategoryError{Field: label.Name, Value: string(rec.Category)})
		}

		rec.Score, err = parseScore(cell(row, sc.Score))
		if err != nil {
			return nil, fail(sc.Score, err)
		}

		if sc.Family != "" {
			rec.ProductFamily = feedback.ProductFamily(cell(row, sc.Family))
			if !rec.ProductFamily.IsKnown() {
				return nil, fail(sc.Family, &feedback.UnknownCategoryError{Field: sc.Family, Value: string(rec.ProductFamily)})
			}
		}

		table.Records = append(table.Records, rec)
	}
	return table, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseScore(v string) (float64, error) {
	if v == "" {
		return 0, errEmptyValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("non-finite score %q", v)
	}
	return f, nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, errEmptyValue
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}

// parseMonthBucket truncates to the first day of the month.
func parseMonthBucket(v string) (time.Time, string, error) {
	t, err := parseDate(v)
	if err != nil {
		return time.Time{}, "", err
	}
	month := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return month, month.Format("2006-01"), nil
}

// parseWeekBucket keeps the label verbatim and truncates the timestamp
// to the first day of the week in month. Labels that only start with a
// month fall back to the first day of that month.
func parseWeekBucket(v string) (time.Time, string, error) {
	if v == "" {
		return time.Time{}, "", errEmptyValue
	}
	if m := weekInMonth.FindStringSubmatch(v); m != nil {
		month, err := time.Parse("2006-01", m[1])
		if err != nil {
			return time.Time{}, "", fmt.Errorf("unrecognized week label %q", v)
		}
		week, _ := strconv.Atoi(m[2])
		if week < 1 || week > 5 {
			return time.Time{}, "", fmt.Errorf("week %d out of range in %q", week, v)
		}
		start := month.AddDate(0, 0, (week-1)*7)
		if start.Month() != month.Month() {
			return time.Time{}, "", fmt.Errorf("week %d of %q starts in %s", week, v, start.Format("2006-01"))
		}
		return start, v, nil
	}
	if t, err := parseDate(v); err == nil {
		day := ((t.Day()-1)/7)*7 + 1
		return time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC), v, nil
	}
	if m := monthPrefix.FindStringSubmatch(v); m != nil {
		if month, err := time.Parse("2006-01", m[1]); err == nil {
			return month, v, nil
		}
	}
	return time.Time{}, "", fmt.Errorf("unrecognized week label %q", v)
}
