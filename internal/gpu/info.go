package gpu

import "fmt"

// Lines renders the readable fields of info as "key: value" pairs in a
// stable order, skipping anything that was not available.
func (info Info) Lines() []string {
	lines := []string{fmt.Sprintf("device_count: %d", info.DeviceCount)}
	if info.Name != nil {
		lines = append(lines, "name: "+*info.Name)
	}
	if info.MemoryTotalMB != nil {
		lines = append(lines,
			fmt.Sprintf("memory_total: %.0f MB", *info.MemoryTotalMB),
			fmt.Sprintf("memory_used: %.0f MB", *info.MemoryUsedMB),
			fmt.Sprintf("memory_free: %.0f MB", *info.MemoryFreeMB),
		)
	}
	if info.DriverVersion != nil {
		lines = append(lines, "driver_version: "+*info.DriverVersion)
	}
	if info.GPUUtil != nil {
		lines = append(lines,
			fmt.Sprintf("gpu_util: %d%%", *info.GPUUtil),
			fmt.Sprintf("memory_util: %d%%", *info.MemoryUtil),
		)
	}
	if info.PowerWatts != nil {
		lines = append(lines, fmt.Sprintf("power_usage: %.2f W", *info.PowerWatts))
	}
	if info.TemperatureC != nil {
		lines = append(lines, fmt.Sprintf("temperature: %d C", *info.TemperatureC))
	}
	return lines
}
