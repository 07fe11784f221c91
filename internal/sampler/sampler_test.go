package sampler

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nhdewitt/memwatch/internal/counters"
	"github.com/nhdewitt/memwatch/internal/pressure"
	"github.com/nhdewitt/memwatch/internal/report"
	"github.com/nhdewitt/memwatch/internal/usage"
)

type fakeSource struct {
	pressure int32
	pageSize int64
	swapUsed uint64
	failAll  bool
}

func (f fakeSource) ReadInt32(key string) (int32, bool) {
	if f.failAll {
		return 0, false
	}
	if key == counters.KeyPressureLevel {
		return f.pressure, true
	}
	return 0, false
}

func (f fakeSource) ReadInt64(key string) (int64, bool) {
	if f.failAll {
		return 0, false
	}
	if key == counters.KeyPageSize {
		return f.pageSize, true
	}
	return 0, false
}

func (f fakeSource) ReadSwapUsage() (uint64, bool) {
	if f.failAll {
		return 0, false
	}
	return f.swapUsed, true
}

type countingRunner struct {
	output string
	err    error
	calls  atomic.Int32
}

func (r *countingRunner) Run(context.Context) (string, error) {
	r.calls.Add(1)
	return r.output, r.err
}

const testReport = `Mach Virtual Memory Statistics: (page size of 4096 bytes)
Anonymous pages:                        1000.
Pages purgeable:                         200.
Pages wired down:                        300.
Pages occupied by compressor:            100.
`

func waitForResult(t *testing.T, ch chan interface{}) Result {
	t.Helper()
	select {
	case msg := <-ch:
		res, ok := msg.(Result)
		if !ok {
			t.Fatalf("published %T, want Result", msg)
		}
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a published sample")
	}
	return Result{}
}

func TestSampler_EndToEnd(t *testing.T) {
	source := fakeSource{pressure: 4, pageSize: 4096, swapUsed: 2 * (1 << 30)}
	runner := &countingRunner{output: testReport}
	s := New(source, runner, time.Hour)

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	s.Start()
	defer s.Stop()

	res := waitForResult(t, ch)

	if res.Level != pressure.Critical {
		t.Errorf("level: got %v, want Critical", res.Level)
	}

	wantMem := usage.MemoryUsedGB(report.Parse(testReport), 4096)
	if math.Abs(res.Stats.MemoryUsedGB-wantMem) > 1e-9 {
		t.Errorf("memory used: got %v, want %v", res.Stats.MemoryUsedGB, wantMem)
	}
	if res.Stats.SwapUsedGB != 2.0 {
		t.Errorf("swap used: got %v, want 2.0", res.Stats.SwapUsedGB)
	}
	if res.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestSampler_DegradedCycle(t *testing.T) {
	source := fakeSource{failAll: true}
	runner := &countingRunner{err: errors.New("command not found")}
	s := New(source, runner, time.Hour)

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)

	s.Start()
	defer s.Stop()

	res := waitForResult(t, ch)

	if res.Level != pressure.Normal {
		t.Errorf("level: got %v, want Normal", res.Level)
	}
	if res.Stats.MemoryUsedGB != 0 || res.Stats.SwapUsedGB != 0 {
		t.Errorf("stats not zeroed: %+v", res.Stats)
	}
}

func TestSampler_StartIdempotent(t *testing.T) {
	runner := &countingRunner{output: testReport}
	s := New(fakeSource{pressure: 1, pageSize: 4096}, runner, time.Hour)

	s.Start()
	s.Start()
	defer s.Stop()

	// With an hour-long interval only the baseline cycle runs; a duplicated
	// timer would run it twice.
	deadline := time.Now().Add(time.Second)
	for runner.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if got := runner.calls.Load(); got != 1 {
		t.Errorf("report runner called %d times, want 1", got)
	}
}

func TestSampler_StopIdempotent(t *testing.T) {
	s := New(fakeSource{pressure: 1, pageSize: 4096}, &countingRunner{output: testReport}, time.Hour)

	s.Stop() // never started

	s.Start()
	s.Stop()
	s.Stop()
}

func TestSampler_Restart(t *testing.T) {
	runner := &countingRunner{output: testReport}
	s := New(fakeSource{pressure: 2, pageSize: 4096}, runner, time.Hour)

	s.Start()
	s.Stop()
	s.Start()
	defer s.Stop()

	deadline := time.Now().Add(time.Second)
	for runner.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if got := runner.calls.Load(); got < 2 {
		t.Errorf("expected a baseline cycle per start, got %d calls", got)
	}
}

func TestSampler_Latest(t *testing.T) {
	s := New(fakeSource{pressure: 2, pageSize: 4096, swapUsed: 1 << 30}, &countingRunner{output: testReport}, time.Hour)

	if s.Latest() != nil {
		t.Fatal("latest should be nil before the first cycle")
	}

	ch := s.Subscribe()
	defer s.Unsubscribe(ch)
	s.Start()
	defer s.Stop()

	published := waitForResult(t, ch)

	latest := s.Latest()
	if latest == nil {
		t.Fatal("latest not set after a cycle")
	}
	if latest.Level != published.Level || latest.Stats != published.Stats {
		t.Errorf("latest %+v does not match published %+v", latest, published)
	}
	if latest.Level != pressure.Warning {
		t.Errorf("level: got %v, want Warning", latest.Level)
	}
}
