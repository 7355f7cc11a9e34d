package repository

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// SQLitePrefix marks a handle that names a table in the configured database.
const SQLitePrefix = "sqlite:"

var (
	errNoDatabase        = errors.New("no database configured")
	errUnsupportedHandle = errors.New("unsupported source handle")
	errNoSheet           = errors.New("no sheet carries the required columns")
	tableName            = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// FeedbackTableRepository reads source tables from CSV files, XLSX workbooks
// or SQLite tables.
type FeedbackTableRepository struct {
	db *sql.DB
}

// NewFeedbackTableRepository creates a repository. db may be nil when no
// handle uses the sqlite: form.
func NewFeedbackTableRepository(db *sql.DB) *FeedbackTableRepository {
	return &FeedbackTableRepository{db: db}
}

// Load reads the table behind handle and decodes it with the source's schema.
func (r *FeedbackTableRepository) Load(ctx context.Context, source feedback.Source, handle string) (*feedback.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	switch {
	case strings.HasPrefix(handle, SQLitePrefix):
		header, rows, err = r.readTable(ctx, strings.TrimPrefix(handle, SQLitePrefix))
	case strings.EqualFold(filepath.Ext(handle), ".csv"):
		header, rows, err = readCSV(handle)
	case strings.EqualFold(filepath.Ext(handle), ".xlsx"):
		header, rows, err = readWorkbook(handle, schemas[source].required())
	default:
		err = errUnsupportedHandle
	}
	if err != nil {
		return nil, &feedback.LoadError{Source: source, Handle: handle, Err: err}
	}

	return decodeTable(source, handle, header, rows)
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("empty file")
		}
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// readWorkbook returns the first sheet whose header row holds every required column.
func readWorkbook(path string, required []string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil || len(rows) == 0 {
			continue
		}
		if hasColumns(rows[0], required) {
			return rows[0], rows[1:], nil
		}
	}
	return nil, nil, errNoSheet
}

func hasColumns(header, required []string) bool {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	for _, col := range required {
		if !present[col] {
			return false
		}
	}
	return true
}

// readTable selects every column of a table; values are read back as text
// so they go through the same coercion as file sources.
func (r *FeedbackTableRepository) readTable(ctx context.Context, table string) ([]string, [][]string, error) {
	if r.db == nil {
		return nil, nil, errNoDatabase
	}
	if !tableName.MatchString(table) {
		return nil, nil, fmt.Errorf("invalid table name %q", table)
	}

	query := fmt.Sprintf(`SELECT * FROM "%s"`, table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, nil, fmt.Errorf("columns %s: %w", table, err)
	}

	var out [][]string
	for rows.Next() {
		values := make([]sql.NullString, len(header))
		dest := make([]any, len(header))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		row := make([]string, len(header))
		for i, v := range values {
			if v.Valid {
				row[i] = v.String
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return header, out, nil
}
