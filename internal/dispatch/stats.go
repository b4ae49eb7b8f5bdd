package dispatch

import (
	"github.com/samber/lo"
)

// Stats are aggregate execution statistics derived on demand from history.
type Stats struct {
	Total        int     `json:"total"`
	Success      int     `json:"success"`
	Failed       int     `json:"failed"`
	Timeout      int     `json:"timeout"`
	SuccessRate  float64 `json:"success_rate"`
	AvgLatencyMS float64 `json:"avg_latency_ms"`
	AvgAttempts  float64 `json:"avg_attempts"`
}

func computeStats(results []Result) Stats {
	stats := Stats{Total: len(results)}
	if stats.Total == 0 {
		return stats
	}

	for _, result := range results {
		switch result.Status {
		case StatusSuccess:
			stats.Success++
		case StatusTimeout:
			stats.Timeout++
		default:
			stats.Failed++
		}
	}

	stats.SuccessRate = float64(stats.Success) / float64(stats.Total)
	stats.AvgLatencyMS = float64(lo.SumBy(results, func(r Result) int64 { return r.ExecutionTimeMS })) / float64(stats.Total)
	stats.AvgAttempts = float64(lo.SumBy(results, func(r Result) int { return r.Attempts })) / float64(stats.Total)

	return stats
}

// Stats aggregates all recorded results. When tool is non-empty, only results
// for that tool are considered.
func (h *History) Stats(tool string) Stats {
	results := h.All()
	if tool != "" {
		results = lo.Filter(results, func(r Result, _ int) bool { return r.ToolName == tool })
	}

	return computeStats(results)
}

// StatsPerTool aggregates recorded results grouped by tool name.
func (h *History) StatsPerTool() map[string]Stats {
	grouped := lo.GroupBy(h.All(), func(r Result) string { return r.ToolName })

	return lo.MapValues(grouped, func(results []Result, _ string) Stats {
		return computeStats(results)
	})
}
