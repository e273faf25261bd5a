package seed

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/thebtf/promptverse/internal/metrics"
	"github.com/thebtf/promptverse/pkg/models"
)

// Defaults for background growth.
const (
	DefaultTarget        int64 = 5_000_005
	DefaultBatchSize           = 500
	DefaultRetryAttempts uint  = 3
	DefaultRetryDelay          = 250 * time.Millisecond

	progressLogEvery = 100 // batches
)

// ErrAlreadyRunning is returned by Run when another growth run holds the guard.
var ErrAlreadyRunning = errors.New("seed run already in progress")

// PromptWriter is the slice of the prompt store the seeder needs.
type PromptWriter interface {
	CountPrompts(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, prompts []*models.Prompt) (int64, error)
}

// Config controls background growth.
type Config struct {
	Target        int64
	BatchSize     int
	RetryAttempts uint
	RetryDelay    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Target < 0 {
		c.Target = 0
	}
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.RetryAttempts == 0 {
		c.RetryAttempts = DefaultRetryAttempts
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	return c
}

// Status is a point-in-time view of the seeder.
type Status struct {
	Running   bool   `json:"running"`
	Cursor    int64  `json:"cursor"`
	Target    int64  `json:"target"`
	BatchSize int    `json:"batchSize"`
	Inserted  int64  `json:"inserted"`
	LastError string `json:"lastError,omitempty"`
	LastRunAt int64  `json:"lastRunAt,omitempty"`
}

// Seeder grows the prompt store toward a target row count in small
// transactions, yielding between batches. At most one run is active at a time.
type Seeder struct {
	store   PromptWriter
	gen     *Generator
	metrics *metrics.Metrics

	mu         sync.RWMutex
	cfg        Config
	lastError  string
	onProgress func(Status)

	running   atomic.Bool
	cursor    atomic.Int64
	inserted  atomic.Int64
	lastRunAt atomic.Int64
}

// NewSeeder creates a seeder. The generator anchor is fixed at construction
// so a restarted run regenerates identical rows for identical sequence numbers.
func NewSeeder(store PromptWriter, cfg Config, m *metrics.Metrics) *Seeder {
	if m == nil {
		m = metrics.New()
	}
	return &Seeder{
		store:   store,
		gen:     NewGenerator(time.Now().UnixMilli()),
		metrics: m,
		cfg:     cfg.withDefaults(),
	}
}

// SetGenerator replaces the generator (tests pin the anchor with it).
func (s *Seeder) SetGenerator(g *Generator) {
	s.mu.Lock()
	s.gen = g
	s.mu.Unlock()
}

// SetConfig updates target and batch size; a running loop picks the change
// up at its next batch.
func (s *Seeder) SetConfig(cfg Config) {
	cfg = cfg.withDefaults()
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
	log.Info().
		Int64("target", cfg.Target).
		Int("batchSize", cfg.BatchSize).
		Msg("Seeder configuration updated")
}

// OnProgress registers a callback invoked after every committed batch and
// when a run ends.
func (s *Seeder) OnProgress(fn func(Status)) {
	s.mu.Lock()
	s.onProgress = fn
	s.mu.Unlock()
}

func (s *Seeder) config() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

func (s *Seeder) generator() *Generator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

// Status returns the current seeder state.
func (s *Seeder) Status() Status {
	s.mu.RLock()
	cfg := s.cfg
	lastErr := s.lastError
	s.mu.RUnlock()
	return Status{
		Running:   s.running.Load(),
		Cursor:    s.cursor.Load(),
		Target:    cfg.Target,
		BatchSize: cfg.BatchSize,
		Inserted:  s.inserted.Load(),
		LastError: lastErr,
		LastRunAt: s.lastRunAt.Load(),
	}
}

// Bootstrap inserts the curated set when the store is empty.
// It returns the number of rows inserted.
func (s *Seeder) Bootstrap(ctx context.Context) (int64, error) {
	count, err := s.store.CountPrompts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count prompts: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	prompts, err := CuratedPrompts(time.Now().UnixMilli())
	if err != nil {
		return 0, err
	}
	n, err := s.store.InsertBatch(ctx, prompts)
	if err != nil {
		return 0, fmt.Errorf("insert curated prompts: %w", err)
	}
	log.Info().Int64("inserted", n).Msg("Bootstrapped empty store with curated prompts")
	return n, nil
}

// Start launches a background growth run and reports whether one was started.
// It is a no-op while another run is active or the store is at target.
func (s *Seeder) Start(ctx context.Context) bool {
	start, ok := s.acquire(ctx)
	if !ok {
		return false
	}
	go func() {
		if err := s.run(ctx, start); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("Background seeding halted")
		}
	}()
	return true
}

// Run grows the store synchronously until target, a batch fails after its
// retries, or ctx is done.
func (s *Seeder) Run(ctx context.Context) error {
	start, ok := s.acquire(ctx)
	if !ok {
		if s.running.Load() {
			return ErrAlreadyRunning
		}
		return nil
	}
	return s.run(ctx, start)
}

// acquire takes the run guard and returns the starting cursor. The guard is
// released again when there is nothing to do.
func (s *Seeder) acquire(ctx context.Context) (int64, bool) {
	if !s.running.CompareAndSwap(false, true) {
		log.Debug().Msg("Seed trigger ignored, run in progress")
		return 0, false
	}

	count, err := s.store.CountPrompts(ctx)
	if err != nil {
		s.setLastError(err)
		s.running.Store(false)
		log.Error().Err(err).Msg("Seed trigger failed to count prompts")
		return 0, false
	}
	if count >= s.config().Target {
		s.cursor.Store(count)
		s.running.Store(false)
		return 0, false
	}
	return count, true
}

func (s *Seeder) run(ctx context.Context, cursor int64) (err error) {
	s.lastRunAt.Store(time.Now().UnixMilli())
	s.cursor.Store(cursor)
	s.setLastError(nil)

	log.Info().
		Int64("cursor", cursor).
		Int64("target", s.config().Target).
		Msg("Background seeding started")

	defer func() {
		s.setLastError(err)
		s.running.Store(false)
		s.notify()
		log.Info().
			Int64("cursor", s.cursor.Load()).
			Int64("inserted", s.inserted.Load()).
			Msg("Background seeding finished")
	}()

	for batches := 1; ; batches++ {
		cfg := s.config()
		remaining := cfg.Target - cursor
		if remaining <= 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		take := cfg.BatchSize
		if int64(take) > remaining {
			take = int(remaining)
		}
		rows := s.generator().Batch(cursor, take)

		var inserted int64
		err := retry.Do(
			func() error {
				n, err := s.store.InsertBatch(ctx, rows)
				if err != nil {
					return err
				}
				inserted = n
				return nil
			},
			retry.Context(ctx),
			retry.Attempts(cfg.RetryAttempts),
			retry.Delay(cfg.RetryDelay),
			retry.LastErrorOnly(true),
			retry.OnRetry(func(n uint, err error) {
				log.Warn().Err(err).Uint("attempt", n+1).Int64("cursor", cursor).Msg("Seed batch failed, retrying")
			}),
		)
		if err != nil {
			s.metrics.RecordSeedFailure(ctx)
			return fmt.Errorf("insert batch at %d: %w", cursor, err)
		}

		cursor += int64(take)
		s.cursor.Store(cursor)
		s.inserted.Add(inserted)
		s.metrics.RecordSeedBatch(ctx, inserted)
		s.notify()

		if batches%progressLogEvery == 0 {
			log.Debug().Int64("cursor", cursor).Int64("target", cfg.Target).Msg("Seeding progress")
		}

		// Hand the processor to request goroutines before the next batch.
		runtime.Gosched()
	}
}

func (s *Seeder) setLastError(err error) {
	msg := ""
	if err != nil && !errors.Is(err, context.Canceled) {
		msg = err.Error()
	}
	s.mu.Lock()
	s.lastError = msg
	s.mu.Unlock()
}

func (s *Seeder) notify() {
	s.mu.RLock()
	fn := s.onProgress
	s.mu.RUnlock()
	if fn != nil {
		fn(s.Status())
	}
}
