//go:build darwin

package report

import (
	"context"
	"os/exec"
)

const vmStatPath = "/usr/bin/vm_stat"

// vmStatRunner shells out to vm_stat for the page-level memory report.
type vmStatRunner struct {
	path string
}

func newPlatformRunner() Runner {
	return vmStatRunner{path: vmStatPath}
}

func (r vmStatRunner) Run(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, r.path).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
