// Package gputest provides an in-memory gpu.Device.
package gputest

import (
	"errors"
	"sync"

	"github.com/nguyentantai21042004/textify/internal/gpu"
)

// ErrRead is returned by a Fake whose readings are set to fail.
var ErrRead = errors.New("gputest: read failed")

// Fake returns scripted readings. Power values are consumed in order and the
// last one repeats. Fail makes every reading error.
type Fake struct {
	mu sync.Mutex

	DeviceName string
	Util       float64
	Power      []float64
	Fail       bool

	reads int
}

var _ gpu.Device = (*Fake)(nil)

func (f *Fake) Name() (string, error) {
	return f.DeviceName, nil
}

func (f *Fake) Utilization() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return 0, ErrRead
	}
	return f.Util, nil
}

func (f *Fake) PowerWatts() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail {
		return 0, ErrRead
	}
	if len(f.Power) == 0 {
		return 0, nil
	}
	i := f.reads
	if i >= len(f.Power) {
		i = len(f.Power) - 1
	}
	f.reads++
	return f.Power[i], nil
}

// SetFail toggles read failures.
func (f *Fake) SetFail(fail bool) {
	f.mu.Lock()
	f.Fail = fail
	f.mu.Unlock()
}

func (f *Fake) Info() gpu.Info {
	name := f.DeviceName
	return gpu.Info{DeviceCount: 1, Name: &name}
}
