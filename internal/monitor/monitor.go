// Package monitor records CPU utilization, GPU utilization and GPU power
// while a batch runs and integrates the power series into energy.
package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/textify/internal/gpu"
	"github.com/nguyentantai21042004/textify/internal/logger"
	"github.com/nguyentantai21042004/textify/internal/sysmetrics"
)

type implMonitor struct {
	cpu      sysmetrics.CPU
	gpu      gpu.Device
	interval time.Duration
	logger   logger.Logger
	now      func() time.Time

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool
	stop      chan struct{}
	done      chan struct{}
	summary   Summary

	// Owned by the sampling goroutine until done is closed.
	times    []time.Time
	cpuPct   []float64
	gpuUtil  []float64
	gpuPower []float64
}

func (m *implMonitor) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		m.started = true
		go m.run(ctx)
	})
}

func (m *implMonitor) run(ctx context.Context) {
	defer close(m.done)

	m.sample(ctx)
	timer := time.NewTimer(m.interval)
	defer timer.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		// Both channels may be ready at once; never sample after a stop.
		select {
		case <-m.stop:
			return
		default:
		}
		m.sample(ctx)
		timer.Reset(m.interval)
	}
}

func (m *implMonitor) Stop() Summary {
	m.stopOnce.Do(func() {
		// Start and Stop come from the same goroutine in the batch runner.
		m.startOnce.Do(func() {})
		close(m.stop)
		if m.started {
			<-m.done
		}
		m.summary = m.summarize()
		m.report(context.Background(), m.summary)
	})
	return m.summary
}

// sample appends one reading per enabled series. A failed read repeats the
// previous value so every series stays aligned with times.
func (m *implMonitor) sample(ctx context.Context) {
	m.times = append(m.times, m.now())

	if m.cpu != nil {
		v, err := m.cpu.Percent()
		if err != nil {
			m.logger.Warn(ctx, "Error getting CPU usage: %v", err)
			v = last(m.cpuPct)
		}
		m.cpuPct = append(m.cpuPct, v)
	}

	if m.gpu != nil {
		util, err := m.gpu.Utilization()
		if err != nil {
			m.logger.Warn(ctx, "Error getting GPU utilization: %v", err)
			util = last(m.gpuUtil)
		}
		m.gpuUtil = append(m.gpuUtil, util)

		power, err := m.gpu.PowerWatts()
		if err != nil {
			m.logger.Warn(ctx, "Error getting GPU power usage: %v", err)
			power = last(m.gpuPower)
		}
		m.gpuPower = append(m.gpuPower, power)
	}

	m.logger.Debug(ctx, "Resource sample %d recorded", len(m.times))
}

func (m *implMonitor) summarize() Summary {
	s := Summary{Samples: len(m.times)}
	if len(m.times) == 0 {
		return s
	}
	if m.cpu != nil {
		s.CPU = statsOf(m.cpuPct)
	}
	if m.gpu != nil {
		s.GPUUtil = statsOf(m.gpuUtil)
		s.GPUPower = statsOf(m.gpuPower)
		s.EnergyWh = EnergyWattHours(seconds(m.times), m.gpuPower)
	}
	return s
}

func (m *implMonitor) report(ctx context.Context, s Summary) {
	m.logger.Info(ctx, "Resource usage statistics:")
	if s.CPU != nil {
		m.logger.Info(ctx, "CPU Usage: Avg=%.2f%%, Min=%.2f%%, Max=%.2f%%", s.CPU.Mean, s.CPU.Min, s.CPU.Max)
	} else {
		m.logger.Info(ctx, "CPU monitoring disabled")
	}
	if s.GPUUtil != nil {
		m.logger.Info(ctx, "GPU Usage: Avg=%.2f%%, Min=%.2f%%, Max=%.2f%%", s.GPUUtil.Mean, s.GPUUtil.Min, s.GPUUtil.Max)
		m.logger.Info(ctx, "GPU Power: Avg=%.2fW, Min=%.2fW, Max=%.2fW", s.GPUPower.Mean, s.GPUPower.Min, s.GPUPower.Max)
		m.logger.Info(ctx, "Total GPU Energy Consumption: %.4f Wh", s.EnergyWh)
	} else {
		m.logger.Info(ctx, "GPU monitoring disabled")
	}
}

func last(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}

func seconds(times []time.Time) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = t.Sub(times[0]).Seconds()
	}
	return out
}
