// Package hostinfo describes the machine a benchmark run executed on, so
// reports from different hosts can be told apart.
package hostinfo

import (
	"os"
	"runtime"
)

// Info is a snapshot of the host.
type Info struct {
	Hostname  string `json:"hostname"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Kernel    string `json:"kernel,omitempty"`
	CPUs      int    `json:"cpus"`
	GoVersion string `json:"go_version"`

	// TotalMemory is physical RAM in bytes, 0 when it could not be detected.
	TotalMemory uint64 `json:"total_memory"`
}

// Collect reads the host description. Platform probes that fail leave their
// fields zero rather than failing the run.
func Collect() Info {
	host, _ := os.Hostname()
	info := Info{
		Hostname:  host,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		CPUs:      runtime.NumCPU(),
		GoVersion: runtime.Version(),
	}
	if mem, ok := totalMemory(); ok {
		info.TotalMemory = mem
	}
	info.Kernel = kernelRelease()
	return info
}
