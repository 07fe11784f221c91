// Package platform probes, once at startup, the host capabilities the
// monitor depends on.
package platform

// Info describes the host's memory-monitoring capabilities.
type Info struct {
	OS            string
	KernelVersion string
	NumCPU        int

	// Pressure signal source
	HasPressureSysctl bool // kern.memorystatus_vm_pressure_level
	HasPSI            bool // /proc/pressure/memory

	// Memory report source, e.g. /usr/bin/vm_stat or /proc/meminfo
	ReportSource string
}
