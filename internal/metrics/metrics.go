// Package metrics tracks engagement, query, and seeding statistics for promptverse.
package metrics

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName     = "github.com/thebtf/promptverse"
	latencyWindow = 1000
)

// Metrics keeps in-process counters for the stats endpoint and mirrors every
// update onto OpenTelemetry instruments. Without a configured MeterProvider
// the otel side is a no-op.
type Metrics struct {
	startTime       time.Time
	recentLatencies []time.Duration
	latenciesMu     sync.Mutex

	totalQueries   atomic.Int64
	totalLatency   atomic.Int64 // Sum in microseconds
	likesOn        atomic.Int64
	likesOff       atomic.Int64
	copies         atomic.Int64
	ratings        atomic.Int64
	promptsCreated atomic.Int64
	promptsUpdated atomic.Int64
	unlockFailures atomic.Int64
	seedBatches    atomic.Int64
	seedRows       atomic.Int64
	seedFailures   atomic.Int64

	queryDuration metric.Float64Histogram
	engagement    metric.Int64Counter
	submissions   metric.Int64Counter
	unlocks       metric.Int64Counter
	seedInserted  metric.Int64Counter
	seedErrors    metric.Int64Counter
}

// New creates a metrics tracker bound to the global MeterProvider.
func New() *Metrics {
	return NewWithMeter(otel.Meter(meterName))
}

// NewWithMeter creates a metrics tracker bound to the given meter.
// Instrument creation errors fall back to no-op instruments.
func NewWithMeter(meter metric.Meter) *Metrics {
	m := &Metrics{
		startTime:       time.Now(),
		recentLatencies: make([]time.Duration, 0, latencyWindow),
	}

	m.queryDuration, _ = meter.Float64Histogram("promptverse.query.duration",
		metric.WithDescription("Duration of prompt read queries"),
		metric.WithUnit("ms"))
	m.engagement, _ = meter.Int64Counter("promptverse.engagement",
		metric.WithDescription("Engagement mutations by kind"))
	m.submissions, _ = meter.Int64Counter("promptverse.submissions",
		metric.WithDescription("Prompt creations and edits"))
	m.unlocks, _ = meter.Int64Counter("promptverse.admin.unlocks",
		metric.WithDescription("Admin unlock attempts by outcome"))
	m.seedInserted, _ = meter.Int64Counter("promptverse.seed.rows",
		metric.WithDescription("Rows inserted by the background generator"))
	m.seedErrors, _ = meter.Int64Counter("promptverse.seed.failures",
		metric.WithDescription("Generator batches that failed after retries"))
	return m
}

// RecordQuery records a read query execution.
func (m *Metrics) RecordQuery(ctx context.Context, kind string, latency time.Duration) {
	m.totalQueries.Add(1)
	m.totalLatency.Add(latency.Microseconds())
	if m.queryDuration != nil {
		m.queryDuration.Record(ctx, float64(latency.Microseconds())/1000,
			metric.WithAttributes(attribute.String("kind", kind)))
	}

	m.latenciesMu.Lock()
	m.recentLatencies = append(m.recentLatencies, latency)
	if len(m.recentLatencies) > latencyWindow {
		m.recentLatencies = m.recentLatencies[len(m.recentLatencies)-latencyWindow:]
	}
	m.latenciesMu.Unlock()
}

// RecordLike records a like toggle result.
func (m *Metrics) RecordLike(ctx context.Context, liked bool) {
	kind := "unlike"
	if liked {
		kind = "like"
		m.likesOn.Add(1)
	} else {
		m.likesOff.Add(1)
	}
	m.addEngagement(ctx, kind)
}

// RecordCopy records a copy increment.
func (m *Metrics) RecordCopy(ctx context.Context) {
	m.copies.Add(1)
	m.addEngagement(ctx, "copy")
}

// RecordRating records a stored rating.
func (m *Metrics) RecordRating(ctx context.Context) {
	m.ratings.Add(1)
	m.addEngagement(ctx, "rating")
}

func (m *Metrics) addEngagement(ctx context.Context, kind string) {
	if m.engagement != nil {
		m.engagement.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
	}
}

// RecordSubmission records a prompt create ("create") or edit ("update").
func (m *Metrics) RecordSubmission(ctx context.Context, op string) {
	if op == "update" {
		m.promptsUpdated.Add(1)
	} else {
		m.promptsCreated.Add(1)
	}
	if m.submissions != nil {
		m.submissions.Add(ctx, 1, metric.WithAttributes(attribute.String("op", op)))
	}
}

// RecordUnlock records an admin unlock attempt.
func (m *Metrics) RecordUnlock(ctx context.Context, ok bool) {
	outcome := "granted"
	if !ok {
		outcome = "rejected"
		m.unlockFailures.Add(1)
	}
	if m.unlocks != nil {
		m.unlocks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}
}

// RecordSeedBatch records a committed generator batch.
func (m *Metrics) RecordSeedBatch(ctx context.Context, inserted int64) {
	m.seedBatches.Add(1)
	m.seedRows.Add(inserted)
	if m.seedInserted != nil {
		m.seedInserted.Add(ctx, inserted)
	}
}

// RecordSeedFailure records a generator batch that exhausted its retries.
func (m *Metrics) RecordSeedFailure(ctx context.Context) {
	m.seedFailures.Add(1)
	if m.seedErrors != nil {
		m.seedErrors.Add(ctx, 1)
	}
}

// GetSnapshot returns current metrics snapshot.
func (m *Metrics) GetSnapshot() Snapshot {
	m.latenciesMu.Lock()
	defer m.latenciesMu.Unlock()

	totalQueries := m.totalQueries.Load()
	snapshot := Snapshot{
		TotalQueries:   totalQueries,
		LikesOn:        m.likesOn.Load(),
		LikesOff:       m.likesOff.Load(),
		Copies:         m.copies.Load(),
		Ratings:        m.ratings.Load(),
		PromptsCreated: m.promptsCreated.Load(),
		PromptsUpdated: m.promptsUpdated.Load(),
		UnlockFailures: m.unlockFailures.Load(),
		SeedBatches:    m.seedBatches.Load(),
		SeedRows:       m.seedRows.Load(),
		SeedFailures:   m.seedFailures.Load(),
		Uptime:         time.Since(m.startTime),
	}

	if totalQueries > 0 {
		snapshot.AvgLatency = time.Duration(m.totalLatency.Load()/totalQueries) * time.Microsecond
	}

	if len(m.recentLatencies) > 0 {
		sorted := slices.Clone(m.recentLatencies)
		slices.Sort(sorted)
		snapshot.P50Latency = percentile(sorted, 0.50)
		snapshot.P95Latency = percentile(sorted, 0.95)
		snapshot.P99Latency = percentile(sorted, 0.99)
	}

	return snapshot
}

// Snapshot represents a point-in-time metrics snapshot.
type Snapshot struct {
	TotalQueries int64         `json:"totalQueries"`
	AvgLatency   time.Duration `json:"avgLatencyNs"`
	P50Latency   time.Duration `json:"p50LatencyNs"`
	P95Latency   time.Duration `json:"p95LatencyNs"`
	P99Latency   time.Duration `json:"p99LatencyNs"`

	LikesOn        int64 `json:"likesOn"`
	LikesOff       int64 `json:"likesOff"`
	Copies         int64 `json:"copies"`
	Ratings        int64 `json:"ratings"`
	PromptsCreated int64 `json:"promptsCreated"`
	PromptsUpdated int64 `json:"promptsUpdated"`
	UnlockFailures int64 `json:"unlockFailures"`

	SeedBatches  int64 `json:"seedBatches"`
	SeedRows     int64 `json:"seedRows"`
	SeedFailures int64 `json:"seedFailures"`

	Uptime time.Duration `json:"uptimeNs"`
}

// percentile calculates the Nth percentile from a sorted slice.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	idx := int(float64(len(sorted)) * p)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}

	return sorted[idx]
}

// String returns a human-readable representation of metrics.
func (s Snapshot) String() string {
	return fmt.Sprintf(`PromptVerse Metrics:
  Queries: %d (avg %v, p50 %v, p95 %v, p99 %v)
  Engagement: likes +%d/-%d, copies %d, ratings %d
  Submissions: created %d, updated %d
  Admin: %d rejected unlocks
  Seeding: %d batches, %d rows, %d failures
  Runtime: %v`,
		s.TotalQueries, s.AvgLatency, s.P50Latency, s.P95Latency, s.P99Latency,
		s.LikesOn, s.LikesOff, s.Copies, s.Ratings,
		s.PromptsCreated, s.PromptsUpdated,
		s.UnlockFailures,
		s.SeedBatches, s.SeedRows, s.SeedFailures,
		s.Uptime,
	)
}
