package sprint

import (
	"fmt"
	"time"
)

// MissingCompletionPolicy decides when a completed item that carries no
// resolved/closed date is assumed to have finished within the sprint. The
// tracker simply has no event for these items, so any placement is a
// placeholder, not a real event.
type MissingCompletionPolicy string

const (
	// PolicyMidpoint assumes completion once the sprint has passed its
	// midpoint. Historical default.
	PolicyMidpoint MissingCompletionPolicy = "midpoint"
	// PolicySprintEnd assumes completion only on the final sprint day.
	PolicySprintEnd MissingCompletionPolicy = "sprint-end"
)

// DailyScopeSnapshot is one day of the burndown/burnup series. The total
// scope fields are constant across the series; remaining and completed
// always sum to them.
type DailyScopeSnapshot struct {
	Date             time.Time `json:"date"`
	RemainingItems   int       `json:"remaining_items"`
	RemainingPoints  float64   `json:"remaining_points"`
	CompletedItems   int       `json:"completed_items"`
	CompletedPoints  float64   `json:"completed_points"`
	TotalScopeItems  int       `json:"total_scope_items"`
	TotalScopePoints float64   `json:"total_scope_points"`
}

// Reconstruct derives the daily remaining/completed series for a sprint
// window. Only items whose state is in the remaining or completed set count
// toward scope; cancelled/duplicate states stay out entirely so they cannot
// skew the totals.
//
// Malformed or missing dates degrade to "no completion date" and fall under
// the configured policy; this function never fails for data-quality reasons.
// An inverted window is a caller bug and fails loudly.
func Reconstruct(items []WorkItem, window Window, states StateSets, policy MissingCompletionPolicy) ([]DailyScopeSnapshot, error) {
	if window.Start.After(window.End) {
		return nil, fmt.Errorf("invalid sprint window: start %s after end %s",
			window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))
	}
	if policy == "" {
		policy = PolicyMidpoint
	}

	var scope []WorkItem
	for _, item := range items {
		if states.InScope(item.State) {
			scope = append(scope, item)
		}
	}

	totalItems := len(scope)
	var totalPoints float64
	for _, item := range scope {
		totalPoints += item.StoryPoints
	}

	sprintDays := window.Days()
	var series []DailyScopeSnapshot

	for d := window.Start; !d.After(window.End); d = d.AddDate(0, 0, 1) {
		completedItems := 0
		completedPoints := 0.0

		for _, item := range scope {
			if !states.Completed[item.State] {
				continue
			}

			completion := CompletionDate(item.Resolved, item.Closed)
			switch {
			case completion != nil:
				if !completion.Before(window.Start) && !completion.After(d) {
					completedItems++
					completedPoints += item.StoryPoints
				}
			case assumedComplete(d, window, sprintDays, policy):
				completedItems++
				completedPoints += item.StoryPoints
			}
		}

		remainingItems := totalItems - completedItems
		remainingPoints := totalPoints - completedPoints
		// The missing-date heuristic can only reach items already inside the
		// fixed scope, but clamp anyway so the conservation law cannot flip
		// negative under a future policy change.
		if remainingItems < 0 {
			remainingItems = 0
		}
		if remainingPoints < 0 {
			remainingPoints = 0
		}

		series = append(series, DailyScopeSnapshot{
			Date:             d,
			RemainingItems:   remainingItems,
			RemainingPoints:  remainingPoints,
			CompletedItems:   completedItems,
			CompletedPoints:  completedPoints,
			TotalScopeItems:  totalItems,
			TotalScopePoints: totalPoints,
		})
	}

	return series, nil
}

// assumedComplete applies the missing-completion-date policy for day d.
// A single-day sprint makes the midpoint test trivially true from day one.
func assumedComplete(d time.Time, window Window, sprintDays int, policy MissingCompletionPolicy) bool {
	if policy == PolicySprintEnd {
		return d.Equal(window.End)
	}
	if sprintDays == 0 {
		return true
	}
	elapsed := int(d.Sub(window.Start).Hours() / 24)
	return float64(elapsed)/float64(sprintDays) >= 0.5
}
