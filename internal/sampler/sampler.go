// Package sampler drives the periodic sampling loop: it reads the kernel
// counters and the memory report, derives stats, classifies the pressure
// signal, and publishes the latest result to subscribers.
package sampler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moby/pubsub"
	"github.com/sirupsen/logrus"

	"github.com/nhdewitt/memwatch/internal/counters"
	"github.com/nhdewitt/memwatch/internal/pressure"
	"github.com/nhdewitt/memwatch/internal/report"
	"github.com/nhdewitt/memwatch/internal/usage"
)

const (
	// DefaultInterval is the polling interval used when none is configured.
	DefaultInterval = 5 * time.Second

	// Fallback when the page size counter is unavailable. Only reached in
	// the degraded path; the normal path always uses the sampled value.
	fallbackPageSize = 4096

	publishTimeout = 100 * time.Millisecond
	publishBuffer  = 16
)

// Result is the unit published to subscribers once per cycle.
type Result struct {
	Level     pressure.Level `json:"level"`
	Stats     usage.Stats    `json:"stats"`
	Timestamp time.Time      `json:"timestamp"`
}

// Sampler polls the counter source and report runner on a fixed interval.
// Cycles are strictly serialized: the loop runs on a single goroutine and a
// tick arriving mid-cycle is dropped by the ticker, never queued.
type Sampler struct {
	source   counters.Source
	runner   report.Runner
	interval time.Duration

	publisher *pubsub.Publisher
	latest    atomic.Pointer[Result]

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a sampler. A non-positive interval selects DefaultInterval.
func New(source counters.Source, runner report.Runner, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{
		source:    source,
		runner:    runner,
		interval:  interval,
		publisher: pubsub.NewPublisher(publishTimeout, publishBuffer),
	}
}

// Start arms the polling timer and takes a baseline sample. Starting an
// already polling sampler is a no-op.
func (s *Sampler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
}

// Stop disarms the timer and waits for any in-flight cycle to finish.
// Stopping an idle sampler is a no-op.
func (s *Sampler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Subscribe returns a channel that receives every published Result.
func (s *Sampler) Subscribe() chan interface{} {
	return s.publisher.Subscribe()
}

// Unsubscribe removes a subscription channel obtained from Subscribe.
func (s *Sampler) Unsubscribe(ch chan interface{}) {
	s.publisher.Evict(ch)
}

// Latest returns the most recently published result, or nil before the first
// cycle completes. The pointer is swapped whole each cycle, so readers never
// observe a torn value.
func (s *Sampler) Latest() *Result {
	return s.latest.Load()
}

func (s *Sampler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.cycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx)
		}
	}
}

// cycle performs one sample. Every acquisition failure degrades to a default;
// the worst case is Normal with zeroed stats, never a crash of the loop.
func (s *Sampler) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("panic recovered in sampling cycle: %v", r)
		}
	}()

	raw, ok := s.source.ReadInt32(counters.KeyPressureLevel)
	if !ok {
		logrus.Debug("pressure level unavailable, reporting normal")
	}
	level := pressure.Classify(raw)

	counts := report.Collect(ctx, s.runner)

	pageSize, ok := s.source.ReadInt64(counters.KeyPageSize)
	if !ok || pageSize <= 0 {
		pageSize = fallbackPageSize
	}

	swapUsed, ok := s.source.ReadSwapUsage()
	if !ok {
		swapUsed = 0
	}

	result := &Result{
		Level: level,
		Stats: usage.Stats{
			MemoryUsedGB: usage.MemoryUsedGB(counts, pageSize),
			SwapUsedGB:   usage.SwapUsedGB(swapUsed),
		},
		Timestamp: time.Now(),
	}

	s.latest.Store(result)
	s.publisher.Publish(*result)

	logrus.WithFields(logrus.Fields{
		"level":          result.Level,
		"memory_used_gb": result.Stats.MemoryUsedGB,
		"swap_used_gb":   result.Stats.SwapUsedGB,
	}).Debug("sample published")
}
