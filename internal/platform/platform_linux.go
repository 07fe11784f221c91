//go:build linux

package platform

import (
	"os"
	"runtime"
	"strings"
)

func Detect() Info {
	info := Info{
		OS:     runtime.GOOS,
		NumCPU: runtime.NumCPU(),
	}

	if data, err := os.ReadFile("/proc/sys/kernel/osrelease"); err == nil {
		info.KernelVersion = strings.TrimSpace(string(data))
	}
	info.HasPSI = fileExists("/proc/pressure/memory")
	if fileExists("/proc/meminfo") {
		info.ReportSource = "/proc/meminfo"
	}

	return info
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
