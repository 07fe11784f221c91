//go:build linux

package report

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tklauser/go-sysconf"
)

// meminfoRunner renders /proc/meminfo into the same "Label: pages." shape the
// vm_stat report uses, so the rest of the pipeline stays platform-agnostic.
// Only the fields the usage derivation consumes are mapped; /proc/meminfo has
// no purgeable or compressor equivalents, and those labels are simply absent.
type meminfoRunner struct {
	path string
}

var meminfoLabels = map[string]string{
	"AnonPages":   "Anonymous pages",
	"Unevictable": "Pages wired down",
}

func newPlatformRunner() Runner {
	return meminfoRunner{path: "/proc/meminfo"}
}

func (r meminfoRunner) Run(ctx context.Context) (string, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", r.path, err)
	}
	defer f.Close()

	pageSize, err := sysconf.Sysconf(sysconf.SC_PAGESIZE)
	if err != nil || pageSize <= 0 {
		pageSize = int64(os.Getpagesize())
	}

	var b strings.Builder
	b.WriteString("Memory report derived from /proc/meminfo:\n")

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		label, ok := meminfoLabels[strings.TrimSuffix(fields[0], ":")]
		if !ok {
			continue
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %d.\n", label, kb*1024/uint64(pageSize))
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("reading %s: %w", r.path, err)
	}

	return b.String(), nil
}
