//go:build !darwin && !linux

package report

import "context"

// emptyRunner reports no counters on platforms without a memory report
// source. The sampling flow degrades to zeroed derived stats.
type emptyRunner struct{}

func newPlatformRunner() Runner {
	return emptyRunner{}
}

func (emptyRunner) Run(context.Context) (string, error) {
	return "", nil
}
