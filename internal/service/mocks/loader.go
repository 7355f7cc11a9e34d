package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/godilite/feedback-insights/internal/feedback"
)

// MockTableLoader is a mock implementation of the TableLoader interface
// for testing the service layer.
type MockTableLoader struct {
	LoadFunc func(ctx context.Context, source feedback.Source, handle string) (*feedback.Table, error)
}

// Load implements the TableLoader interface
func (m *MockTableLoader) Load(ctx context.Context, source feedback.Source, handle string) (*feedback.Table, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, source, handle)
	}
	return nil, errors.New("LoadFunc not implemented")
}

// LoadObservation is one call recorded by MockRecorder.
type LoadObservation struct {
	Source  string
	Records int
	Err     error
}

// MockRecorder records table loads. Safe for concurrent use.
type MockRecorder struct {
	mu           sync.Mutex
	Observations []LoadObservation
}

// ObserveLoad implements the LoadRecorder interface
func (m *MockRecorder) ObserveLoad(source string, records int, err error, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Observations = append(m.Observations, LoadObservation{Source: source, Records: records, Err: err})
}
