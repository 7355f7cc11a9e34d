package feedback

import (
	"errors"
	"fmt"
)

var (
	ErrLoad            = errors.New("load failed")
	ErrIndex           = errors.New("position out of range")
	ErrUnknownCategory = errors.New("unknown category")
	ErrUnknownSource   = errors.New("unknown source")
	ErrNoRecords       = errors.New("no records found")
)

// LoadError reports a source that could not be read or did not match its schema.
type LoadError struct {
	Source Source
	Handle string
	Column string
	Row    int
	Err    error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s from %q", e.Source, e.Handle)
	if e.Column != "" {
		msg += fmt.Sprintf(" column %q", e.Column)
	}
	if e.Row > 0 {
		msg += fmt.Sprintf(" row %d", e.Row)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// IndexError reports a curated position beyond the ranked sequence.
type IndexError struct {
	Position int
	Len      int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("position %d out of range [0,%d)", e.Position, e.Len)
}

func (e *IndexError) Is(target error) bool { return target == ErrIndex }

// UnknownCategoryError reports a value missing from a fixed color or order map.
type UnknownCategoryError struct {
	Field string
	Value string
}

func (e *UnknownCategoryError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("unknown category %q", e.Value)
	}
	return fmt.Sprintf("unknown category %q for field %q", e.Value, e.Field)
}

func (e *UnknownCategoryError) Is(target error) bool { return target == ErrUnknownCategory }
