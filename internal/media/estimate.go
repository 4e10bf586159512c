package media

import (
	"strings"

	"github.com/nguyentantai21042004/textify/internal/capability"
	"github.com/nguyentantai21042004/textify/internal/config"
	"github.com/nguyentantai21042004/textify/internal/gpu"
)

// Coefficient is an affine processing-time model, seconds = Slope*duration
// + Intercept, for GPUs whose name contains Match.
type Coefficient struct {
	Match     string
	Slope     float64
	Intercept float64
}

// DefaultTable holds the measured coefficients. Order matters: the first
// matching row wins.
var DefaultTable = []Coefficient{
	{Match: "RTX 4070", Slope: 0.1894, Intercept: 120.2099},
	{Match: "RTX 4060 Ti", Slope: 0.3162, Intercept: 40.9230},
}

// TableFromConfig converts configured rows, falling back to DefaultTable.
func TableFromConfig(rows []config.EstimateRow) []Coefficient {
	if len(rows) == 0 {
		return append([]Coefficient(nil), DefaultTable...)
	}
	table := make([]Coefficient, 0, len(rows))
	for _, r := range rows {
		table = append(table, Coefficient{Match: r.Match, Slope: r.Slope, Intercept: r.Intercept})
	}
	return table
}

// Estimator predicts transcription wall time from media duration.
type Estimator struct {
	table  []Coefficient
	device gpu.Device
}

// NewEstimator binds table to the primary GPU when GPU management is available.
func NewEstimator(table []Coefficient, flags capability.Flags) Estimator {
	e := Estimator{table: table}
	if flags.GPUManagement {
		e.device = flags.GPU
	}
	return e
}

// Estimate returns the predicted seconds, or exactly 0 without a GPU or for
// a GPU the table does not know.
func (e Estimator) Estimate(durationSec float64) float64 {
	if e.device == nil {
		return 0
	}
	name, err := e.device.Name()
	if err != nil {
		return 0
	}
	for _, c := range e.table {
		if strings.Contains(name, c.Match) {
			return c.Slope*durationSec + c.Intercept
		}
	}
	return 0
}
