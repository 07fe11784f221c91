package main

import (
	"github.com/sirupsen/logrus"

	"github.com/nhdewitt/memwatch/internal/pressure"
	"github.com/nhdewitt/memwatch/internal/sampler"
)

// logSamples consumes published samples and logs severity transitions: a rise
// logs at warn or error, a recovery at info, and steady state at debug.
func logSamples(ch chan interface{}) {
	last := pressure.Normal
	first := true

	for msg := range ch {
		res, ok := msg.(sampler.Result)
		if !ok {
			continue
		}

		entry := logrus.WithFields(logrus.Fields{
			"level":  res.Level.String(),
			"memory": res.Stats.MemoryLine(),
			"swap":   res.Stats.SwapLine(),
		})

		if first || res.Level != last {
			switch res.Level {
			case pressure.Critical:
				entry.Error("memory pressure critical")
			case pressure.Warning:
				entry.Warn("memory pressure elevated")
			default:
				entry.Info("memory pressure normal")
			}
		} else {
			entry.Debug("sample")
		}

		last = res.Level
		first = false
	}
}
