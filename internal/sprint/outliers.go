package sprint

import (
	"cmp"
	"slices"
)

// LongCycleItem is a single outlier in the cycle-time distribution. The
// category travels with it so reports can group slow work by discipline.
type LongCycleItem struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Type          string   `json:"type"`
	Assignee      string   `json:"assignee"`
	Category      Category `json:"category"`
	StoryPoints   float64  `json:"story_points"`
	CycleTimeDays int      `json:"cycle_time_days"`
}

// LongCycleResult is the outlier report for one item set.
type LongCycleResult struct {
	ThresholdDays float64         `json:"threshold_days"`
	MeanDays      float64         `json:"mean_days"`
	StdDevDays    float64         `json:"stddev_days"`
	SampleSize    int             `json:"sample_size"`
	Items         []LongCycleItem `json:"items"`
}

// LongCycleItems flags items whose cycle time exceeds mean + one standard
// deviation, sorted by cycle time descending. With fewer than two data
// points the stddev degenerates to zero, so a flat mean+5 padding keeps the
// threshold meaningful. Items without cycle-time data are ignored.
func LongCycleItems(items []WorkItem) LongCycleResult {
	var measured []WorkItem
	var durations []float64
	for _, item := range items {
		if item.CycleTimeDays != nil {
			measured = append(measured, item)
			durations = append(durations, float64(*item.CycleTimeDays))
		}
	}

	result := LongCycleResult{SampleSize: len(measured)}
	if len(measured) == 0 {
		return result
	}

	result.MeanDays = round1(Mean(durations))
	if len(measured) < 2 {
		result.ThresholdDays = Mean(durations) + 5
	} else {
		result.StdDevDays = round1(SampleStdDev(durations))
		result.ThresholdDays = Mean(durations) + SampleStdDev(durations)
	}

	for _, item := range measured {
		if float64(*item.CycleTimeDays) > result.ThresholdDays {
			result.Items = append(result.Items, LongCycleItem{
				ID:            item.ID,
				Title:         item.Title,
				Type:          item.Type,
				Assignee:      item.Assignee,
				Category:      item.Category,
				StoryPoints:   item.StoryPoints,
				CycleTimeDays: *item.CycleTimeDays,
			})
		}
	}

	slices.SortFunc(result.Items, func(a, b LongCycleItem) int {
		if c := cmp.Compare(b.CycleTimeDays, a.CycleTimeDays); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	result.ThresholdDays = round1(result.ThresholdDays)
	return result
}
