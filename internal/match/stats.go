package match

import "gazetteer/internal/core"

// ComputeStats derives aggregate counts from an assignment in a single pass.
// ManualMatched counts entries inside named clusters with AutoAssigned set to
// false; AutoAssign never produces that state, it appears only after a manual
// review move.
func ComputeStats(assignment *core.ClusterAssignment) core.MatchStats {
	stats := core.MatchStats{
		ByCluster: make(map[string]int, len(assignment.Clusters)),
	}
	for clusterID, bucket := range assignment.Clusters {
		stats.ByCluster[clusterID] = len(bucket)
		stats.Assigned += len(bucket)
		for _, entry := range bucket {
			if entry.AutoAssigned {
				stats.AutoMatched++
			} else {
				stats.ManualMatched++
			}
		}
	}
	stats.Unassigned = len(assignment.Unassigned)
	stats.TotalPOIs = stats.Assigned + stats.Unassigned
	return stats
}
