//go:build !darwin && !linux

package platform

import "runtime"

func Detect() Info {
	return Info{
		OS:     runtime.GOOS,
		NumCPU: runtime.NumCPU(),
	}
}
