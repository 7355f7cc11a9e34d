package service

import (
	"context"
	"time"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// TableLoader defines how a source's table is read.
type TableLoader interface {
	Load(ctx context.Context, source feedback.Source, handle string) (*feedback.Table, error)
}

// LoadRecorder observes table loads, typically for metrics.
type LoadRecorder interface {
	ObserveLoad(source string, records int, err error, elapsed time.Duration)
}
