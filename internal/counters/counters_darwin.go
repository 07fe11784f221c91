//go:build darwin

package counters

import (
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

type darwinSource struct{}

func newPlatformSource() Source {
	return darwinSource{}
}

func (darwinSource) ReadInt32(key string) (int32, bool) {
	v, err := unix.SysctlUint32(key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Debug("sysctl read failed")
		return 0, false
	}
	return int32(v), true
}

func (darwinSource) ReadInt64(key string) (int64, bool) {
	v, err := unix.SysctlUint64(key)
	if err != nil {
		logrus.WithError(err).WithField("key", key).Debug("sysctl read failed")
		return 0, false
	}
	return int64(v), true
}

// xswUsage mirrors struct xsw_usage as returned by the vm.swapusage sysctl.
type xswUsage struct {
	Total     uint64
	Avail     uint64
	Used      uint64
	PageSize  uint32
	Encrypted uint32
}

func (darwinSource) ReadSwapUsage() (uint64, bool) {
	raw, err := unix.SysctlRaw("vm.swapusage")
	if err != nil {
		logrus.WithError(err).Debug("sysctl vm.swapusage failed")
		return 0, false
	}
	if len(raw) < int(unsafe.Sizeof(xswUsage{})) {
		logrus.WithField("size", len(raw)).Debug("vm.swapusage returned short struct")
		return 0, false
	}
	usage := (*xswUsage)(unsafe.Pointer(&raw[0]))
	return usage.Used, true
}
