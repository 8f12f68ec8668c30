// Package labelstats aggregates label frequencies across tiles and
// annotations and renders distribution summaries.
package labelstats

import (
	"fmt"
	"sort"
)

// Count tallies label occurrences for a single shard of work.
func Count(labels []string) map[string]int {
	counts := make(map[string]int)
	for _, label := range labels {
		counts[label]++
	}
	return counts
}

// Merge aggregates per-shard label counts into a single map.
func Merge(shards []map[string]int) map[string]int {
	merged := make(map[string]int)

	for _, counts := range shards {
		for label, count := range counts {
			merged[label] += count
		}
	}

	return merged
}

// LabelShare is one label's slice of the total.
type LabelShare struct {
	Label   string
	Count   int
	Percent float64
}

// String renders the share the way run logs and summaries print it.
func (s LabelShare) String() string {
	return fmt.Sprintf("%s: %d (%.1f%%)", s.Label, s.Count, s.Percent)
}

// Distribution orders label counts by frequency (ties alphabetically) and
// attaches each label's percentage of total. A non-positive total yields
// zero percentages.
func Distribution(counts map[string]int, total int) []LabelShare {
	shares := make([]LabelShare, 0, len(counts))
	for label, count := range counts {
		share := LabelShare{Label: label, Count: count}
		if total > 0 {
			share.Percent = float64(count) / float64(total) * 100
		}
		shares = append(shares, share)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Label < shares[j].Label
	})

	return shares
}
