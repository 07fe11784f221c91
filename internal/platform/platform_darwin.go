//go:build darwin

package platform

import (
	"os"
	"runtime"

	"golang.org/x/sys/unix"
)

func Detect() Info {
	info := Info{
		OS:     runtime.GOOS,
		NumCPU: runtime.NumCPU(),
	}

	if rel, err := unix.Sysctl("kern.osrelease"); err == nil {
		info.KernelVersion = rel
	}
	if _, err := unix.SysctlUint32("kern.memorystatus_vm_pressure_level"); err == nil {
		info.HasPressureSysctl = true
	}
	if _, err := os.Stat("/usr/bin/vm_stat"); err == nil {
		info.ReportSource = "/usr/bin/vm_stat"
	}

	return info
}
