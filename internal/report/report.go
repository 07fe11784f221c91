// Package report invokes the host memory report command and parses its
// line-oriented output into per-label page counts.
package report

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// Counters maps a report label to its page count. Labels are not
// contractually stable across OS versions, so consumers must treat every
// lookup as best-effort.
type Counters map[string]uint64

// Runner produces the raw text of one memory report. Implementations wrap
// the platform report command so tests can inject canned output.
type Runner interface {
	Run(ctx context.Context) (string, error)
}

// NewRunner returns the report runner for the current platform.
func NewRunner() Runner {
	return newPlatformRunner()
}

// Collect runs one report and parses it. A failed or empty report yields an
// empty map; the sampling flow is never failed from here.
func Collect(ctx context.Context, r Runner) Counters {
	out, err := r.Run(ctx)
	if err != nil {
		logrus.WithError(err).Debug("memory report command failed")
		return Counters{}
	}
	return Parse(out)
}

// Parse converts report text into page counts. Body lines have the shape
//
//	Pages wired down:      12345.
//
// split on the first colon, whitespace and the trailing period trimmed from
// the numeric field. The header and any trailing summary region do not match
// that shape and are skipped, as is any individually malformed line; partial
// data is better than none.
func Parse(output string) Counters {
	counters := make(Counters)

	for _, line := range strings.Split(output, "\n") {
		label, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		value = strings.TrimSuffix(strings.TrimSpace(value), ".")
		pages, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			continue
		}
		counters[label] = pages
	}

	return counters
}
