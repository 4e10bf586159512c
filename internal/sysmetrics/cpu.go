// Package sysmetrics reads host CPU utilization through gopsutil.
package sysmetrics

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
)

// CPU reports system-wide CPU utilization.
type CPU interface {
	// Percent is the utilization since the previous call, in percent.
	Percent() (float64, error)
}

type gopsutilCPU struct{}

// Open verifies that CPU counters are readable on this host. The first
// reading primes the delta so later calls are meaningful.
func Open() (CPU, error) {
	c := gopsutilCPU{}
	if _, err := c.Percent(); err != nil {
		return nil, err
	}
	return c, nil
}

func (gopsutilCPU) Percent() (float64, error) {
	values, err := cpu.Percent(0, false)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("cpu percent: no data")
	}
	return values[0], nil
}
