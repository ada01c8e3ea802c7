package sprint

import "time"

// CycleTime derives the elapsed whole days between an item's activation and
// its completion. When the activation date is missing (common for items that
// skipped the Active state) the creation date stands in, at the cost of
// slightly overstating the duration.
//
// The result is absent when no valid non-negative span exists; such items
// are excluded from cycle-time statistics rather than counted as zero.
func CycleTime(created, activated, resolved, closed *time.Time) (int, bool) {
	completion := CompletionDate(resolved, closed)
	if completion == nil {
		return 0, false
	}

	if activated != nil && !completion.Before(*activated) {
		return wholeDays(*activated, *completion), true
	}

	if created != nil && !completion.Before(*created) {
		return wholeDays(*created, *completion), true
	}

	return 0, false
}

func wholeDays(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
