package types

// Collection is the ordered set of leads, newest first. It is the unit of
// persistence: stores load and save it whole.
type Collection []Lead

// Index returns the position of the lead with the given ID, or -1.
func (c Collection) Index(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns a copy of the lead with the given ID.
func (c Collection) Find(id string) (Lead, bool) {
	i := c.Index(id)
	if i < 0 {
		return Lead{}, false
	}
	return c[i], true
}

// Clone returns a copy of the collection that shares no backing array with c.
// A nil collection clones to an empty, non-nil one.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
