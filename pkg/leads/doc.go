// Package leads is the lead lifecycle engine: creation, stage transitions,
// the follow-up automation rule, statistics and CSV export.
//
// Every operation takes a Collection and returns a new one; the input is
// never modified. Operations given an ID that is not in the collection
// return an unchanged copy.
package leads
