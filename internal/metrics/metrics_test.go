package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewWithMeter(noop.NewMeterProvider().Meter("test"))
	ctx := context.Background()

	m.RecordLike(ctx, true)
	m.RecordLike(ctx, true)
	m.RecordLike(ctx, false)
	m.RecordCopy(ctx)
	m.RecordRating(ctx)
	m.RecordSubmission(ctx, "create")
	m.RecordSubmission(ctx, "update")
	m.RecordUnlock(ctx, false)
	m.RecordUnlock(ctx, true)
	m.RecordSeedBatch(ctx, 500)
	m.RecordSeedBatch(ctx, 250)
	m.RecordSeedFailure(ctx)

	s := m.GetSnapshot()
	assert.Equal(t, int64(2), s.LikesOn)
	assert.Equal(t, int64(1), s.LikesOff)
	assert.Equal(t, int64(1), s.Copies)
	assert.Equal(t, int64(1), s.Ratings)
	assert.Equal(t, int64(1), s.PromptsCreated)
	assert.Equal(t, int64(1), s.PromptsUpdated)
	assert.Equal(t, int64(1), s.UnlockFailures)
	assert.Equal(t, int64(2), s.SeedBatches)
	assert.Equal(t, int64(750), s.SeedRows)
	assert.Equal(t, int64(1), s.SeedFailures)
}

func TestMetrics_Latency(t *testing.T) {
	m := New()
	ctx := context.Background()

	for i := 1; i <= 100; i++ {
		m.RecordQuery(ctx, "list", time.Duration(i)*time.Millisecond)
	}

	s := m.GetSnapshot()
	assert.Equal(t, int64(100), s.TotalQueries)
	assert.Equal(t, 50*time.Millisecond+500*time.Microsecond, s.AvgLatency)
	assert.Equal(t, 51*time.Millisecond, s.P50Latency)
	assert.Equal(t, 96*time.Millisecond, s.P95Latency)
	assert.Equal(t, 100*time.Millisecond, s.P99Latency)
	assert.Contains(t, s.String(), "Queries: 100")
}

func TestMetrics_LatencyWindowBounded(t *testing.T) {
	m := New()
	for i := 0; i < latencyWindow+50; i++ {
		m.RecordQuery(context.Background(), "recent", time.Millisecond)
	}
	m.latenciesMu.Lock()
	defer m.latenciesMu.Unlock()
	require.Len(t, m.recentLatencies, latencyWindow)
}

func TestPercentile(t *testing.T) {
	assert.Zero(t, percentile(nil, 0.5))
	sorted := []time.Duration{1, 2, 3, 4}
	assert.Equal(t, time.Duration(3), percentile(sorted, 0.5))
	assert.Equal(t, time.Duration(4), percentile(sorted, 1.0))
}
