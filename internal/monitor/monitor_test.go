package monitor

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/textify/internal/gpu/gputest"
	"github.com/nguyentantai21042004/textify/internal/logger/loggertest"
)

type scriptedCPU struct {
	values []float64
	fail   map[int]bool
	reads  atomic.Int64
}

func (c *scriptedCPU) Percent() (float64, error) {
	n := int(c.reads.Add(1)) - 1
	if c.fail[n] {
		return 0, errors.New("counter read failed")
	}
	if len(c.values) == 0 {
		return 0, nil
	}
	if n >= len(c.values) {
		n = len(c.values) - 1
	}
	return c.values[n], nil
}

// clock returns a Now func that advances by step on each call.
func clock(step time.Duration) func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now := t
		t = t.Add(step)
		return now
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEnergyWattHours(t *testing.T) {
	tests := []struct {
		name  string
		times []float64
		watts []float64
		want  float64
	}{
		{"three samples", []float64{0, 5, 10}, []float64{10, 20, 30}, ((10+20)/2.0*5 + (20+30)/2.0*5) / 3600},
		{"constant", []float64{0, 3600}, []float64{100, 100}, 100},
		{"single sample", []float64{0}, []float64{50}, 0},
		{"empty", nil, nil, 0},
		{"mismatched", []float64{0, 5}, []float64{10}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EnergyWattHours(tc.times, tc.watts); !near(got, tc.want) {
				t.Errorf("EnergyWattHours() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSummaryFromSamples(t *testing.T) {
	log := &loggertest.Recorder{}
	m := New(Options{
		CPU:    &scriptedCPU{values: []float64{10, 50, 30}},
		GPU:    &gputest.Fake{Util: 40, Power: []float64{10, 20, 30}},
		Logger: log,
		Now:    clock(5 * time.Second),
	}).(*implMonitor)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		m.sample(ctx)
	}
	s := m.Stop()

	if s.Samples != 3 {
		t.Fatalf("Samples = %d, want 3", s.Samples)
	}
	if s.CPU == nil || s.CPU.Min != 10 || s.CPU.Max != 50 || !near(s.CPU.Mean, 30) {
		t.Errorf("CPU = %+v", s.CPU)
	}
	if s.GPUPower == nil || s.GPUPower.Min != 10 || s.GPUPower.Max != 30 || !near(s.GPUPower.Mean, 20) {
		t.Errorf("GPUPower = %+v", s.GPUPower)
	}
	want := ((10+20)/2.0*5 + (20+30)/2.0*5) / 3600
	if !near(s.EnergyWh, want) {
		t.Errorf("EnergyWh = %v, want %v", s.EnergyWh, want)
	}

	for _, line := range []string{
		"Resource usage statistics:",
		"CPU Usage: Avg=30.00%, Min=10.00%, Max=50.00%",
		"GPU Usage: Avg=40.00%, Min=40.00%, Max=40.00%",
		"GPU Power: Avg=20.00W, Min=10.00W, Max=30.00W",
		"Total GPU Energy Consumption: 0.0556 Wh",
	} {
		if !log.Contains("info", line) {
			t.Errorf("missing log line %q in %v", line, log.Entries())
		}
	}
}

func TestFailedReadsAreBackfilled(t *testing.T) {
	log := &loggertest.Recorder{}
	dev := &gputest.Fake{Util: 70, Power: []float64{25}, Fail: true}
	m := New(Options{
		CPU:    &scriptedCPU{values: []float64{0, 40, 0}, fail: map[int]bool{0: true, 2: true}},
		GPU:    dev,
		Logger: log,
		Now:    clock(time.Second),
	}).(*implMonitor)

	ctx := context.Background()
	m.sample(ctx) // everything fails, zeros
	dev.SetFail(false)
	m.sample(ctx) // cpu 40, gpu 70/25
	dev.SetFail(true)
	m.sample(ctx) // cpu fails, gpu fails, previous values repeat

	wantCPU := []float64{0, 40, 40}
	wantUtil := []float64{0, 70, 70}
	wantPower := []float64{0, 25, 25}
	for i := range wantCPU {
		if m.cpuPct[i] != wantCPU[i] || m.gpuUtil[i] != wantUtil[i] || m.gpuPower[i] != wantPower[i] {
			t.Fatalf("sample %d = cpu %v util %v power %v", i, m.cpuPct[i], m.gpuUtil[i], m.gpuPower[i])
		}
	}
	if len(m.times) != 3 || len(m.cpuPct) != 3 || len(m.gpuUtil) != 3 || len(m.gpuPower) != 3 {
		t.Errorf("series lengths differ: %d %d %d %d", len(m.times), len(m.cpuPct), len(m.gpuUtil), len(m.gpuPower))
	}
	if got := len(log.Level("warn")); got != 6 {
		t.Errorf("warnings = %d, want 6", got)
	}
}

func TestDisabledSeries(t *testing.T) {
	log := &loggertest.Recorder{}
	m := New(Options{Logger: log, Now: clock(time.Second)}).(*implMonitor)
	m.sample(context.Background())
	s := m.Stop()

	if s.CPU != nil || s.GPUUtil != nil || s.GPUPower != nil || s.EnergyWh != 0 {
		t.Errorf("Summary = %+v, want no series", s)
	}
	if !log.Contains("info", "CPU monitoring disabled") || !log.Contains("info", "GPU monitoring disabled") {
		t.Errorf("missing disabled lines: %v", log.Entries())
	}
}

func TestNoSampleAfterStop(t *testing.T) {
	cpu := &scriptedCPU{values: []float64{5}}
	m := New(Options{CPU: cpu, Interval: 2 * time.Millisecond, Logger: &loggertest.Recorder{}})
	m.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for cpu.reads.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s := m.Stop()
	reads := cpu.reads.Load()

	time.Sleep(20 * time.Millisecond)
	if after := cpu.reads.Load(); after != reads {
		t.Errorf("reads after Stop: %d -> %d", reads, after)
	}
	if int64(s.Samples) != reads {
		t.Errorf("Samples = %d, reads = %d", s.Samples, reads)
	}
	if again := m.Stop(); again.Samples != s.Samples {
		t.Errorf("second Stop() = %+v, want %+v", again, s)
	}
}

func TestStopLatencyIsOneInterval(t *testing.T) {
	m := New(Options{CPU: &scriptedCPU{}, Interval: time.Hour, Logger: &loggertest.Recorder{}})
	m.Start(context.Background())

	start := time.Now()
	s := m.Stop()
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Stop() took %v", elapsed)
	}
	if s.Samples != 1 {
		t.Errorf("Samples = %d, want the immediate sample only", s.Samples)
	}
}
