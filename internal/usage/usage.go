// Package usage derives the human-facing memory figures from raw page counts
// and byte counters.
package usage

import (
	"fmt"
	"math"

	"github.com/nhdewitt/memwatch/internal/report"
)

// Report labels consumed by the memory-used derivation. Purgeable pages are
// reclaimable without writeback and excluded; compressor pages count as used.
const (
	LabelAnonymous  = "Anonymous pages"
	LabelPurgeable  = "Pages purgeable"
	LabelWired      = "Pages wired down"
	LabelCompressor = "Pages occupied by compressor"
)

const bytesPerGB = 1 << 30

// Stats is the derived usage snapshot published with every sample.
type Stats struct {
	MemoryUsedGB float64 `json:"memory_used_gb"`
	SwapUsedGB   float64 `json:"swap_used_gb"`
}

// MemoryLine renders the canonical memory stat line for presentation.
func (s Stats) MemoryLine() string {
	return fmt.Sprintf("Memory Used: %.2f GB", s.MemoryUsedGB)
}

// SwapLine renders the canonical swap stat line for presentation.
func (s Stats) SwapLine() string {
	return fmt.Sprintf("Swap Used: %.2f GB", s.SwapUsedGB)
}

// MemoryUsedGB computes used memory from the report counters and the sampled
// page size. A missing label counts as zero; a momentarily inconsistent
// reading (purgeable exceeding anonymous) clamps to zero instead of going
// negative.
func MemoryUsedGB(counters report.Counters, pageSizeBytes int64) float64 {
	anonymous := float64(counters[LabelAnonymous])
	purgeable := float64(counters[LabelPurgeable])
	wired := float64(counters[LabelWired])
	compressor := float64(counters[LabelCompressor])

	pages := anonymous - purgeable + wired + compressor
	return clamp(pages * float64(pageSizeBytes) / bytesPerGB)
}

// SwapUsedGB converts the swap used-bytes counter to GB.
func SwapUsedGB(usedBytes uint64) float64 {
	return clamp(float64(usedBytes) / bytesPerGB)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
