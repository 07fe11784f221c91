//go:build !darwin && !linux

package counters

// stubSource reports every counter as unavailable. Callers fall back to
// their defaults, so the sampling loop still runs on unsupported platforms.
type stubSource struct{}

func newPlatformSource() Source {
	return stubSource{}
}

func (stubSource) ReadInt32(string) (int32, bool) { return 0, false }
func (stubSource) ReadInt64(string) (int64, bool) { return 0, false }
func (stubSource) ReadSwapUsage() (uint64, bool)  { return 0, false }
