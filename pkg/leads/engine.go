package leads

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/leadboard/pkg/types"
)

// NewLead builds a lead in stage new with both timestamps set to now.
// Fields are trimmed; an empty field returns the matching sentinel error.
func NewLead(name, phone, interest string, now time.Time) (types.Lead, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	interest = strings.TrimSpace(interest)

	switch {
	case name == "":
		return types.Lead{}, types.ErrInvalidName
	case phone == "":
		return types.Lead{}, types.ErrInvalidPhone
	case interest == "":
		return types.Lead{}, types.ErrInvalidInterest
	}

	id, err := uuid.NewV7()
	if err != nil {
		return types.Lead{}, fmt.Errorf("generating UUID v7: %w", err)
	}

	ts := types.NewTimestamp(now)
	return types.Lead{
		ID:        id.String(),
		Name:      name,
		Phone:     phone,
		Interest:  interest,
		Stage:     types.StageNew,
		FollowUp:  false,
		CreatedAt: ts,
		UpdatedAt: ts,
	}, nil
}

// AddLead returns a collection with lead prepended, so the newest lead
// comes first.
func AddLead(c types.Collection, lead types.Lead) types.Collection {
	out := make(types.Collection, 0, len(c)+1)
	out = append(out, lead)
	return append(out, c...)
}

// MoveStage moves the lead with the given ID to target. Moving to closed or
// lost clears its follow-up flag; moving to the current stage still
// refreshes UpdatedAt. An unknown target returns ErrInvalidStage together
// with an unchanged copy of c.
func MoveStage(c types.Collection, id string, target types.Stage, now time.Time) (types.Collection, error) {
	out := c.Clone()
	if !target.Valid() {
		return out, fmt.Errorf("%w: %q", types.ErrInvalidStage, target)
	}
	if i := out.Index(id); i >= 0 {
		if err := out[i].SetStage(target, now); err != nil {
			return c.Clone(), err
		}
	}
	return out, nil
}

// ToggleFollowUp flips the follow-up flag of the lead with the given ID.
func ToggleFollowUp(c types.Collection, id string, now time.Time) types.Collection {
	out := c.Clone()
	if i := out.Index(id); i >= 0 {
		out[i].ToggleFollowUp(now)
	}
	return out
}

// RemoveLead returns c without the lead with the given ID.
func RemoveLead(c types.Collection, id string) types.Collection {
	out := make(types.Collection, 0, len(c))
	for _, l := range c {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}
