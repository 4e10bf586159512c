// Package gpu wraps NVML for the primary accelerator (device 0).
package gpu

import (
	"errors"
	"fmt"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// ErrNoDevice is returned when NVML initializes but reports no GPUs.
var ErrNoDevice = errors.New("no NVIDIA GPU detected")

// Device is the read-only view of the primary GPU used by the rest of textify.
type Device interface {
	Name() (string, error)
	// Utilization is the GPU core utilization in percent.
	Utilization() (float64, error)
	// PowerWatts is the current board power draw.
	PowerWatts() (float64, error)
	Info() Info
}

// Info is a best-effort snapshot; fields that could not be read stay nil.
type Info struct {
	DeviceCount   int
	Name          *string
	MemoryTotalMB *float64
	MemoryUsedMB  *float64
	MemoryFreeMB  *float64
	DriverVersion *string
	GPUUtil       *uint32
	MemoryUtil    *uint32
	PowerWatts    *float64
	TemperatureC  *uint32
}

type nvmlDevice struct {
	handle nvml.Device
	count  int
}

// Open initializes NVML and binds device 0.
func Open() (Device, error) {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil, fmt.Errorf("nvml init: %s", nvml.ErrorString(ret))
	}

	count, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS {
		nvml.Shutdown()
		return nil, fmt.Errorf("nvml device count: %s", nvml.ErrorString(ret))
	}
	if count == 0 {
		nvml.Shutdown()
		return nil, ErrNoDevice
	}

	handle, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		nvml.Shutdown()
		return nil, fmt.Errorf("nvml device 0: %s", nvml.ErrorString(ret))
	}
	return &nvmlDevice{handle: handle, count: count}, nil
}

func (d *nvmlDevice) Name() (string, error) {
	name, ret := d.handle.GetName()
	if ret != nvml.SUCCESS {
		return "", fmt.Errorf("gpu name: %s", nvml.ErrorString(ret))
	}
	return name, nil
}

func (d *nvmlDevice) Utilization() (float64, error) {
	util, ret := d.handle.GetUtilizationRates()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("gpu utilization: %s", nvml.ErrorString(ret))
	}
	return float64(util.Gpu), nil
}

func (d *nvmlDevice) PowerWatts() (float64, error) {
	milliwatts, ret := d.handle.GetPowerUsage()
	if ret != nvml.SUCCESS {
		return 0, fmt.Errorf("gpu power: %s", nvml.ErrorString(ret))
	}
	return float64(milliwatts) / 1000, nil
}

func (d *nvmlDevice) Info() Info {
	info := Info{DeviceCount: d.count}

	if name, ret := d.handle.GetName(); ret == nvml.SUCCESS {
		info.Name = &name
	} else {
		unknown := "Unknown"
		info.Name = &unknown
	}
	if mem, ret := d.handle.GetMemoryInfo(); ret == nvml.SUCCESS {
		total, used, free := toMB(mem.Total), toMB(mem.Used), toMB(mem.Free)
		info.MemoryTotalMB, info.MemoryUsedMB, info.MemoryFreeMB = &total, &used, &free
	}
	if driver, ret := nvml.SystemGetDriverVersion(); ret == nvml.SUCCESS {
		info.DriverVersion = &driver
	}
	if util, ret := d.handle.GetUtilizationRates(); ret == nvml.SUCCESS {
		g, m := util.Gpu, util.Memory
		info.GPUUtil, info.MemoryUtil = &g, &m
	}
	if mw, ret := d.handle.GetPowerUsage(); ret == nvml.SUCCESS {
		w := float64(mw) / 1000
		info.PowerWatts = &w
	}
	if temp, ret := d.handle.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		info.TemperatureC = &temp
	}
	return info
}

func toMB(b uint64) float64 {
	return float64(b) / (1024 * 1024)
}
