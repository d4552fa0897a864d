// Package match assigns extracted points of interest to geographic clusters
// by fuzzy name similarity. It is a pure, synchronous computation: no I/O,
// no shared state, inputs are never mutated.
package match

import (
	"fmt"
	"strings"

	"gazetteer/internal/core"
)

// Matcher runs suggestion and auto-assignment under a fixed set of
// thresholds.
type Matcher struct {
	cfg Config
}

// New creates a Matcher with the given thresholds.
func New(cfg Config) *Matcher {
	return &Matcher{cfg: cfg}
}

// NewDefault creates a Matcher with the default thresholds.
func NewDefault() *Matcher {
	return New(DefaultConfig())
}

// FindBestMatch scores the POI's name against every candidate and returns
// the single best suggestion, or nil when no candidate clears the minimum
// suggestion threshold. Ties go to the first candidate in input order.
// A blank POI or candidate name is a contract violation and fails fast;
// silently coercing it would corrupt scoring with no visible signal.
func (m *Matcher) FindBestMatch(poi core.POI, candidates []core.PlaceRecord) (*core.MatchSuggestion, error) {
	if strings.TrimSpace(poi.Name) == "" {
		return nil, fmt.Errorf("poi %q has an empty name", poi.ID)
	}

	bestScore := -1.0
	bestIdx := -1
	for i, cand := range candidates {
		if strings.TrimSpace(cand.Name) == "" {
			return nil, fmt.Errorf("place record %q has an empty name", cand.ID)
		}
		// Strict > keeps the first candidate on equal scores.
		if score := Similarity(poi.Name, cand.Name); score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || bestScore < m.cfg.MinSuggestionThreshold {
		return nil, nil
	}
	return &core.MatchSuggestion{
		Candidate:  candidates[bestIdx],
		Score:      bestScore,
		Confidence: m.confidence(bestScore),
	}, nil
}

// confidence tiers a score that already cleared the suggestion floor.
func (m *Matcher) confidence(score float64) core.Confidence {
	switch {
	case score >= m.cfg.HighConfidenceThreshold:
		return core.ConfidenceHigh
	case score >= m.cfg.MediumConfidenceThreshold:
		return core.ConfidenceMedium
	default:
		return core.ConfidenceLow
	}
}

// AutoAssign places each POI, in input order, into the cluster of its best
// matching candidate when the suggestion clears the auto-match threshold
// (inclusive). POIs without an accepted suggestion land in Unassigned; a
// below-threshold suggestion is still attached there as an advisory "closest
// guess" for the reviewer. Cluster buckets are pre-seeded for every distinct
// cluster id in the candidate list so downstream consumers can render empty
// clusters. The result is deterministic for fixed inputs and shares no
// slices with them.
func (m *Matcher) AutoAssign(pois []core.POI, candidates []core.PlaceRecord) (*core.ClusterAssignment, error) {
	assignment := &core.ClusterAssignment{
		Unassigned:   []core.AssignedPOI{},
		Clusters:     make(map[string][]core.AssignedPOI),
		ClusterNames: make(map[string]string),
	}
	for _, cand := range candidates {
		if _, ok := assignment.Clusters[cand.ClusterID]; !ok {
			assignment.Clusters[cand.ClusterID] = []core.AssignedPOI{}
			assignment.ClusterNames[cand.ClusterID] = cand.ClusterName
		}
	}

	for _, poi := range pois {
		suggestion, err := m.FindBestMatch(poi, candidates)
		if err != nil {
			return nil, err
		}
		if suggestion != nil && suggestion.Score >= m.cfg.AutoMatchThreshold {
			clusterID := suggestion.Candidate.ClusterID
			assignment.Clusters[clusterID] = append(assignment.Clusters[clusterID], core.AssignedPOI{
				POI:           poi,
				PlaceRecordID: suggestion.Candidate.ID,
				Suggestion:    suggestion,
				AutoAssigned:  true,
			})
			continue
		}
		assignment.Unassigned = append(assignment.Unassigned, core.AssignedPOI{
			POI:        poi,
			Suggestion: suggestion,
		})
	}

	return assignment, nil
}
