package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestObserveLoad(t *testing.T) {
	m := New()

	m.ObserveLoad("twitter", 120, nil, 30*time.Millisecond)
	m.ObserveLoad("twitter", 0, errors.New("boom"), time.Millisecond)
	m.ObserveLoad("survey", 40, nil, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.loadTotal.WithLabelValues("twitter", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loadTotal.WithLabelValues("twitter", "error")))
	assert.Equal(t, 120.0, testutil.ToFloat64(m.tableRecords.WithLabelValues("twitter")))
	assert.Equal(t, 40.0, testutil.ToFloat64(m.tableRecords.WithLabelValues("survey")))
}

func TestObserveRPC(t *testing.T) {
	m := New()

	m.ObserveRPC("/feedback.v1.FeedbackInsights/GetDashboard", "OK", 5*time.Millisecond)
	m.ObserveRPC("/feedback.v1.FeedbackInsights/GetDashboard", "OK", 7*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rpcTotal.WithLabelValues("/feedback.v1.FeedbackInsights/GetDashboard", "OK")))
}

func TestServer(t *testing.T) {
	m := New()
	m.ObserveLoad("trustpilot", 9, nil, time.Millisecond)

	srv, err := NewServer(0, m, zaptest.NewLogger(t))
	require.NoError(t, err)
	srv.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	resp, err := http.Get("http://" + srv.Addr().String() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `feedback_insights_table_records{source="trustpilot"} 9`))
}
