package types

import "fmt"

// Stage is the pipeline state a lead occupies.
type Stage string

// Pipeline stages. Stages form a flat set: any stage may be reached from any
// other. Closed and lost are terminal only by convention.
const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StageQualified Stage = "qualified"
	StageClosed    Stage = "closed"
	StageLost      Stage = "lost"
)

// Stages lists every stage in board order.
var Stages = []Stage{
	StageNew,
	StageContacted,
	StageQualified,
	StageClosed,
	StageLost,
}

// validStages is the set of recognized stage values.
var validStages = map[Stage]bool{
	StageNew:       true,
	StageContacted: true,
	StageQualified: true,
	StageClosed:    true,
	StageLost:      true,
}

// Valid reports whether s is one of the five pipeline stages.
func (s Stage) Valid() bool {
	return validStages[s]
}

// Terminal reports whether s is closed or lost. Terminal leads never need
// follow-up.
func (s Stage) Terminal() bool {
	return s == StageClosed || s == StageLost
}

func (s Stage) String() string {
	return string(s)
}

// ParseStage converts a user-supplied string into a Stage.
// Returns ErrInvalidStage if the value is not recognized.
func ParseStage(s string) (Stage, error) {
	stage := Stage(s)
	if !stage.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
	}
	return stage, nil
}
