package azdo

import (
	"time"

	"sprintpulse/internal/sprint"
)

// MapWorkItem transforms a raw DTO into a domain WorkItem and computes the
// derived fields in one pass. Derivation happens exactly once per fetch; the
// result is treated as immutable downstream.
func MapWorkItem(dto WorkItemDTO, categorizer *sprint.Categorizer, completedStates map[string]bool) sprint.WorkItem {
	f := dto.Fields

	assignee := "Unassigned"
	if f.AssignedTo != nil && f.AssignedTo.DisplayName != "" {
		assignee = f.AssignedTo.DisplayName
	}

	item := sprint.WorkItem{
		ID:          dto.ID,
		Title:       f.Title,
		Type:        f.Type,
		State:       f.State,
		Assignee:    assignee,
		StoryPoints: f.StoryPoints,
		Tags:        f.Tags,
		Created:     parseDatePtr(f.CreatedDate),
		Activated:   parseDatePtr(f.ActivatedDate),
		Resolved:    parseDatePtr(f.ResolvedDate),
		Closed:      parseDatePtr(f.ClosedDate),
	}

	item.Category = categorizer.Categorize(item.Title, item.Type, item.Tags)
	if days, ok := sprint.CycleTime(item.Created, item.Activated, item.Resolved, item.Closed); ok {
		item.CycleTimeDays = &days
	}
	item.IsCompleted = completedStates[item.State]

	return item
}

// MapWorkItems maps a full fetch result.
func MapWorkItems(dtos []WorkItemDTO, categorizer *sprint.Categorizer, completedStates map[string]bool) []sprint.WorkItem {
	items := make([]sprint.WorkItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, MapWorkItem(dto, categorizer, completedStates))
	}
	return items
}

func parseDatePtr(raw string) *time.Time {
	if t, ok := sprint.ParseDate(raw); ok {
		return &t
	}
	return nil
}
