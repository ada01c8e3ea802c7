package sprint

import (
	"cmp"
	"slices"
)

// AssigneeStats aggregates completed work for one person.
type AssigneeStats struct {
	Assignee        string  `json:"assignee"`
	CompletedItems  int     `json:"completed_items"`
	CompletedPoints float64 `json:"completed_points"`
	AvgCycleDays    float64 `json:"avg_cycle_days"`
}

// CategoryStats aggregates completed work for one category.
type CategoryStats struct {
	Category   Category `json:"category"`
	Items      int      `json:"items"`
	Points     float64  `json:"points"`
	ItemShare  float64  `json:"item_share_pct"`
	PointShare float64  `json:"point_share_pct"`
}

// Summary is the sprint-level rollup consumed by reports and the MCP tools.
type Summary struct {
	TotalItems           int     `json:"total_items"`
	CompletedItems       int     `json:"completed_items"`
	TotalPoints          float64 `json:"total_points"`
	CompletedPoints      float64 `json:"completed_points"`
	CompletionRateItems  float64 `json:"completion_rate_items_pct"`
	CompletionRatePoints float64 `json:"completion_rate_points_pct"`
	AvgCycleDays         float64 `json:"avg_cycle_days"`
	MedianCycleDays      float64 `json:"median_cycle_days"`
	CycleSampleSize      int     `json:"cycle_sample_size"`

	Assignees  []AssigneeStats `json:"assignees"`
	Categories []CategoryStats `json:"categories"`
}

// Summarize computes the full rollup over one sprint's item set. Assignee and
// category breakdowns cover completed work only, matching the review-report
// convention; totals cover everything.
func Summarize(items []WorkItem) Summary {
	var s Summary
	s.TotalItems = len(items)

	var cycleDurations []float64
	var cycleDays []int
	byAssignee := make(map[string]*AssigneeStats)
	assigneeCycles := make(map[string][]float64)
	byCategory := make(map[Category]*CategoryStats)

	for _, item := range items {
		s.TotalPoints += item.StoryPoints
		if !item.IsCompleted {
			continue
		}

		s.CompletedItems++
		s.CompletedPoints += item.StoryPoints

		if item.CycleTimeDays != nil {
			cycleDurations = append(cycleDurations, float64(*item.CycleTimeDays))
			cycleDays = append(cycleDays, *item.CycleTimeDays)
		}

		// Unassigned work counts toward totals but stays out of the
		// per-person ranking.
		if item.Assignee != "Unassigned" {
			a := byAssignee[item.Assignee]
			if a == nil {
				a = &AssigneeStats{Assignee: item.Assignee}
				byAssignee[item.Assignee] = a
			}
			a.CompletedItems++
			a.CompletedPoints += item.StoryPoints
			if item.CycleTimeDays != nil {
				assigneeCycles[item.Assignee] = append(assigneeCycles[item.Assignee], float64(*item.CycleTimeDays))
			}
		}

		c := byCategory[item.Category]
		if c == nil {
			c = &CategoryStats{Category: item.Category}
			byCategory[item.Category] = c
		}
		c.Items++
		c.Points += item.StoryPoints
	}

	if s.TotalItems > 0 {
		s.CompletionRateItems = round1(float64(s.CompletedItems) / float64(s.TotalItems) * 100)
	}
	if s.TotalPoints > 0 {
		s.CompletionRatePoints = round1(s.CompletedPoints / s.TotalPoints * 100)
	}

	s.CycleSampleSize = len(cycleDurations)
	s.AvgCycleDays = round1(Mean(cycleDurations))
	s.MedianCycleDays = round1(MedianDiscrete(cycleDays))

	for name, a := range byAssignee {
		a.AvgCycleDays = round1(Mean(assigneeCycles[name]))
		s.Assignees = append(s.Assignees, *a)
	}
	slices.SortFunc(s.Assignees, func(a, b AssigneeStats) int {
		if c := cmp.Compare(b.CompletedPoints, a.CompletedPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.Assignee, b.Assignee)
	})

	for _, c := range byCategory {
		if s.CompletedItems > 0 {
			c.ItemShare = round1(float64(c.Items) / float64(s.CompletedItems) * 100)
		}
		if s.CompletedPoints > 0 {
			c.PointShare = round1(c.Points / s.CompletedPoints * 100)
		}
		s.Categories = append(s.Categories, *c)
	}
	slices.SortFunc(s.Categories, func(a, b CategoryStats) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(string(a.Category), string(b.Category))
	})

	return s
}

// VelocityPoint is one sprint's delivered volume.
type VelocityPoint struct {
	Sprint          string  `json:"sprint"`
	CompletedItems  int     `json:"completed_items"`
	CompletedPoints float64 `json:"completed_points"`
}

// Velocity computes delivered points per sprint, in the order given. Sprints
// with no cached items still emit a zero point so charts keep their x-axis.
func Velocity(sprints []string, itemsBySprint map[string][]WorkItem) []VelocityPoint {
	points := make([]VelocityPoint, 0, len(sprints))
	for _, name := range sprints {
		vp := VelocityPoint{Sprint: name}
		for _, item := range itemsBySprint[name] {
			if item.IsCompleted {
				vp.CompletedItems++
				vp.CompletedPoints += item.StoryPoints
			}
		}
		points = append(points, vp)
	}
	return points
}
