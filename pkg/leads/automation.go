package leads

import (
	"time"

	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// DefaultIdleAfter is how long a lead may sit untouched in an active stage
// before it is flagged for follow-up.
const DefaultIdleAfter = 48 * time.Hour

// Rule flags leads that have been idle too long.
type Rule struct {
	// IdleAfter is the minimum idle time; reaching it exactly qualifies.
	IdleAfter time.Duration

	// Stages are the stages the rule watches.
	Stages []types.Stage
}

// DefaultRule watches new and contacted leads with a two-day threshold.
var DefaultRule = Rule{
	IdleAfter: DefaultIdleAfter,
	Stages:    []types.Stage{types.StageNew, types.StageContacted},
}

// NewRule returns DefaultRule with a different threshold.
// Returns ErrInvalidThreshold if idleAfter is not positive.
func NewRule(idleAfter time.Duration) (Rule, error) {
	if idleAfter <= 0 {
		return Rule{}, types.ErrInvalidThreshold
	}
	r := DefaultRule
	r.Stages = append([]types.Stage(nil), DefaultRule.Stages...)
	r.IdleAfter = idleAfter
	return r, nil
}

// RunAutomation applies DefaultRule.
func RunAutomation(c types.Collection, now time.Time) (types.Collection, int) {
	return DefaultRule.Apply(c, now)
}

// Apply sets the follow-up flag on every watched lead idle for at least
// IdleAfter and returns the new collection with the number of leads flagged
// by this run. Already flagged leads are not counted again. UpdatedAt is
// left alone, and leads without an UpdatedAt are skipped.
func (r Rule) Apply(c types.Collection, now time.Time) (types.Collection, int) {
	out := c.Clone()
	flagged := 0
	for i := range out {
		l := &out[i]
		if l.FollowUp || !r.watches(l.Stage) {
			continue
		}
		idle, ok := l.IdleFor(now)
		if !ok || idle < r.IdleAfter {
			continue
		}
		l.FollowUp = true
		flagged++
	}
	return out, flagged
}

func (r Rule) watches(s types.Stage) bool {
	for _, w := range r.Stages {
		if w == s {
			return true
		}
	}
	return false
}
