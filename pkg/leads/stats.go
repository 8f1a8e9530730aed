package leads

import "github.com/mesh-intelligence/leadboard/pkg/types"

// Stats summarizes a collection.
type Stats struct {
	Total    int                 `json:"total"`
	ByStage  map[types.Stage]int `json:"byStage"`
	FollowUp int                 `json:"followUp"`
	// Unknown counts leads whose stored stage is not a pipeline stage.
	Unknown int `json:"unknown,omitempty"`
}

// ComputeStats counts leads per stage and leads flagged for follow-up.
// Every stage is present in ByStage, zero or not.
func ComputeStats(c types.Collection) Stats {
	s := Stats{
		Total:   len(c),
		ByStage: make(map[types.Stage]int, len(types.Stages)),
	}
	for _, stage := range types.Stages {
		s.ByStage[stage] = 0
	}
	for _, l := range c {
		if l.Stage.Valid() {
			s.ByStage[l.Stage]++
		} else {
			s.Unknown++
		}
		if l.FollowUp {
			s.FollowUp++
		}
	}
	return s
}
