package monitor

import "context"

// Monitor samples CPU and GPU counters on a background goroutine.
type Monitor interface {
	// Start launches the sampling loop. It takes one sample immediately.
	Start(ctx context.Context)
	// Stop signals the loop, waits for it to exit, then logs and returns the
	// run statistics. Calling Stop again returns the same Summary.
	Stop() Summary
}

// Stats summarizes one sampled series.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64
}

// Summary is the result of a monitoring session. Series that were not
// sampled are nil.
type Summary struct {
	Samples  int
	CPU      *Stats
	GPUUtil  *Stats
	GPUPower *Stats
	EnergyWh float64
}
