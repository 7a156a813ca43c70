package allocator

import (
	"math/rand"
	"sort"
)

// RankCandidates orders staff IDs in place so the best candidate comes first:
//  1. fewer assigned hours
//  2. fewer assigned shifts
//  3. random tie-break drawn from rng
//
// The tie-break is a shuffle followed by a stable sort, so equally loaded candidates keep
// their shuffled order. A nil rng leaves ties in the order given.
func RankCandidates(workload *Workload, candidates []string, rng *rand.Rand) {
	if rng != nil {
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		minutesI := workload.Minutes(candidates[i])
		minutesJ := workload.Minutes(candidates[j])
		if minutesI != minutesJ {
			return minutesI < minutesJ
		}
		return workload.ShiftCount(candidates[i]) < workload.ShiftCount(candidates[j])
	})
}
