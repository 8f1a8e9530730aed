package types

import "time"

// Lead is a prospective customer tracked through the pipeline.
type Lead struct {
	ID        string    `json:"id"`        // UUID v7, generated on creation.
	Name      string    `json:"name"`      // Required, non-empty.
	Phone     string    `json:"phone"`     // Required, non-empty.
	Interest  string    `json:"interest"`  // Required, non-empty.
	Stage     Stage     `json:"stage"`     // One of the Stage constants.
	FollowUp  bool      `json:"followUp"`  // Needs renewed outreach.
	CreatedAt Timestamp `json:"createdAt"` // Set once at creation.
	UpdatedAt Timestamp `json:"updatedAt"` // Refreshed on stage change or follow-up toggle.
}

// SetStage moves the lead to the given stage and refreshes UpdatedAt.
// Moving to closed or lost clears the follow-up flag. Setting the current
// stage succeeds and still refreshes UpdatedAt.
// Returns ErrInvalidStage if the stage is not recognized.
func (l *Lead) SetStage(stage Stage, now time.Time) error {
	if !stage.Valid() {
		return ErrInvalidStage
	}
	l.Stage = stage
	if stage.Terminal() {
		l.FollowUp = false
	}
	l.touch(now)
	return nil
}

// ToggleFollowUp flips the follow-up flag and refreshes UpdatedAt.
func (l *Lead) ToggleFollowUp(now time.Time) {
	l.FollowUp = !l.FollowUp
	l.touch(now)
}

// IdleFor returns the absolute time elapsed between UpdatedAt and now.
// The second result is false when UpdatedAt is missing.
func (l *Lead) IdleFor(now time.Time) (time.Duration, bool) {
	if l.UpdatedAt.IsZero() {
		return 0, false
	}
	d := now.Sub(l.UpdatedAt.Time)
	if d < 0 {
		d = -d
	}
	return d, true
}

// touch refreshes UpdatedAt without ever moving it backwards.
func (l *Lead) touch(now time.Time) {
	ts := NewTimestamp(now)
	if ts.Before(l.UpdatedAt.Time) {
		return
	}
	l.UpdatedAt = ts
}
