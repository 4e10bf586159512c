package monitor

func statsOf(series []float64) *Stats {
	if len(series) == 0 {
		return nil
	}
	s := Stats{Min: series[0], Max: series[0]}
	var sum float64
	for _, v := range series {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		sum += v
	}
	s.Mean = sum / float64(len(series))
	return &s
}

// EnergyWattHours integrates watts over timestamps (in seconds) with the
// trapezoidal rule. It returns 0 for fewer than two samples or series of
// different lengths.
func EnergyWattHours(timestamps, watts []float64) float64 {
	if len(timestamps) < 2 || len(timestamps) != len(watts) {
		return 0
	}
	var joules float64
	for i := 1; i < len(timestamps); i++ {
		joules += (watts[i] + watts[i-1]) / 2 * (timestamps[i] - timestamps[i-1])
	}
	return joules / 3600
}
