package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// buffersPerWorker is the frame plus one scratch layer per blended scene.
const buffersPerWorker = 3

// HostInfo describes the machine frames are rendered on.
type HostInfo struct {
	CPUModel        string
	LogicalCores    int
	TotalMemory     uint64
	AvailableMemory uint64
}

// Describe collects host information. Missing values are left zero.
func Describe() HostInfo {
	info := HostInfo{LogicalCores: runtime.NumCPU()}

	if n, err := cpu.Counts(true); err == nil && n > 0 {
		info.LogicalCores = n
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
		info.AvailableMemory = vm.Available
	}
	return info
}

// Workers sizes the frame worker pool. A positive request is returned unchanged;
// otherwise the pool uses every logical core, capped so that the frame buffers of
// all workers fit in half of the available memory.
func Workers(requested int, frameBytes uint64) int {
	if requested > 0 {
		return requested
	}
	return workersFor(Describe(), frameBytes)
}

func workersFor(info HostInfo, frameBytes uint64) int {
	n := info.LogicalCores
	if n < 1 {
		n = 1
	}
	if frameBytes == 0 || info.AvailableMemory == 0 {
		return n
	}

	limit := int(info.AvailableMemory / 2 / (frameBytes * buffersPerWorker))
	if limit < 1 {
		limit = 1
	}
	if limit < n {
		n = limit
	}
	return n
}
