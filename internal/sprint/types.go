package sprint

import (
	"time"
)

// Category is a work-item classification label. The set of labels in play is
// defined by CategoryConfig; the constants below are the built-in vocabulary.
type Category string

const (
	CategoryBug      Category = "Bug"
	CategoryUX       Category = "UX"
	CategoryQA       Category = "QA"
	CategoryFrontend Category = "Frontend"
	CategoryBackend  Category = "Backend"
	CategoryOther    Category = "Other"
)

// WorkItem is a single tracked unit of work for one sprint, with its derived
// fields already computed by the mapper. Derived fields are never patched
// incrementally; a re-fetch rebuilds every item from scratch.
type WorkItem struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	State       string  `json:"state"`
	Assignee    string  `json:"assignee"`
	StoryPoints float64 `json:"story_points"`
	Tags        string  `json:"tags"`

	Created   *time.Time `json:"created_date,omitempty"`
	Activated *time.Time `json:"activated_date,omitempty"`
	Resolved  *time.Time `json:"resolved_date,omitempty"`
	Closed    *time.Time `json:"closed_date,omitempty"`

	Category      Category `json:"category"`
	CycleTimeDays *int     `json:"cycle_time_days,omitempty"`
	IsCompleted   bool     `json:"is_completed"`
}

// StateSets partitions the workflow vocabulary into remaining and completed
// states. Items in any other state are out of scope for burndown.
type StateSets struct {
	Remaining map[string]bool
	Completed map[string]bool
}

// NewStateSets builds a StateSets from two state name lists.
func NewStateSets(remaining, completed []string) StateSets {
	s := StateSets{
		Remaining: make(map[string]bool, len(remaining)),
		Completed: make(map[string]bool, len(completed)),
	}
	for _, name := range remaining {
		s.Remaining[name] = true
	}
	for _, name := range completed {
		s.Completed[name] = true
	}
	return s
}

// InScope returns true if the state belongs to either set.
func (s StateSets) InScope(state string) bool {
	return s.Remaining[state] || s.Completed[state]
}

// Window is an inclusive calendar date range. Both bounds are midnight UTC.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of whole days between start and end (0 for a
// single-day window).
func (w Window) Days() int {
	return int(w.End.Sub(w.Start).Hours() / 24)
}

// CompletionDate resolves the completion timestamp of an item: the resolved
// date wins over the closed date when both are present.
func CompletionDate(resolved, closed *time.Time) *time.Time {
	if resolved != nil {
		return resolved
	}
	return closed
}
