// Package counters reads named kernel memory counters. Every read queries the
// kernel once and reports ok=false on failure; there is no caching and no
// retrying, callers supply their own defaults.
package counters

// Counter names understood by the platform sources. The names follow the
// sysctl convention; non-sysctl platforms map them to their local equivalents.
const (
	KeyMemSize       = "hw.memsize"
	KeyPageSize      = "hw.pagesize"
	KeyPressureLevel = "kern.memorystatus_vm_pressure_level"
)

// Source is a named kernel counter store.
type Source interface {
	ReadInt32(key string) (int32, bool)
	ReadInt64(key string) (int64, bool)
	ReadSwapUsage() (usedBytes uint64, ok bool)
}

// NewSource returns the counter source for the current platform.
func NewSource() Source {
	return newPlatformSource()
}
