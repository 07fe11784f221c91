//go:build linux

package counters

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sirupsen/logrus"
	"github.com/tklauser/go-sysconf"
)

const psiMemoryFile = "/proc/pressure/memory"

// PSI some avg10 thresholds that line up with the kernel's 1/2/4 pressure
// convention on platforms that expose it directly.
const (
	psiWarningPct  = 10.0
	psiCriticalPct = 50.0
)

type linuxSource struct{}

func newPlatformSource() Source {
	return linuxSource{}
}

func (s linuxSource) ReadInt32(key string) (int32, bool) {
	if key == KeyPressureLevel {
		return readPressureLevel()
	}
	v, ok := s.ReadInt64(key)
	if !ok || v > math.MaxInt32 {
		return 0, false
	}
	return int32(v), true
}

func (linuxSource) ReadInt64(key string) (int64, bool) {
	switch key {
	case KeyPageSize:
		sc, err := sysconf.Sysconf(sysconf.SC_PAGESIZE)
		if err != nil || sc <= 0 {
			return 0, false
		}
		return sc, true
	case KeyMemSize:
		vm, err := mem.VirtualMemory()
		if err != nil {
			logrus.WithError(err).Debug("reading virtual memory failed")
			return 0, false
		}
		return int64(vm.Total), true
	}
	return 0, false
}

func (linuxSource) ReadSwapUsage() (uint64, bool) {
	sw, err := mem.SwapMemory()
	if err != nil {
		logrus.WithError(err).Debug("reading swap memory failed")
		return 0, false
	}
	return sw.Used, true
}

// readPressureLevel derives a raw 1/2/4 pressure value from the memory PSI
// "some" avg10 figure.
func readPressureLevel() (int32, bool) {
	data, err := os.ReadFile(psiMemoryFile)
	if err != nil {
		return 0, false
	}
	avg, ok := parsePSIAvg10(string(data))
	if !ok {
		return 0, false
	}
	return levelForAvg10(avg), true
}

func levelForAvg10(avg float64) int32 {
	switch {
	case avg >= psiCriticalPct:
		return 4
	case avg >= psiWarningPct:
		return 2
	}
	return 1
}

// parsePSIAvg10 extracts avg10 from the "some" line of /proc/pressure/memory:
//
//	some avg10=0.00 avg60=0.00 avg300=0.00 total=0
func parsePSIAvg10(text string) (float64, bool) {
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[0] != "some" {
			continue
		}
		for _, field := range fields[1:] {
			key, value, found := strings.Cut(field, "=")
			if !found || key != "avg10" {
				continue
			}
			pct, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return 0, false
			}
			return pct, true
		}
	}
	return 0, false
}
