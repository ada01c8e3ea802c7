package azdo

import (
	"strings"
	"testing"

	"sprintpulse/internal/sprint"
)

func completedStates() map[string]bool {
	return map[string]bool{"Closed": true, "Resolved": true}
}

func TestMapWorkItem(t *testing.T) {
	dto := WorkItemDTO{
		ID: 4711,
		Fields: FieldsDTO{
			Title:         "Deprecate legacy endpoint",
			Type:          "User Story",
			State:         "Closed",
			AssignedTo:    &IdentityDTO{DisplayName: "Ada Lovelace"},
			StoryPoints:   5,
			Tags:          "sprint15; platform",
			CreatedDate:   "2025-07-01T08:00:00.123Z",
			ActivatedDate: "2025-07-16T09:30:00Z",
			ResolvedDate:  "2025-07-22T17:45:00.9876543Z",
		},
	}

	item := MapWorkItem(dto, sprint.NewCategorizer(sprint.CategoryConfig{}), completedStates())

	if item.ID != 4711 || item.Assignee != "Ada Lovelace" || item.StoryPoints != 5 {
		t.Errorf("basic fields wrong: %+v", item)
	}
	if !item.IsCompleted {
		t.Error("Closed state should be completed")
	}
	if item.Category != sprint.CategoryBackend {
		t.Errorf("category = %q, want Backend", item.Category)
	}
	if item.CycleTimeDays == nil || *item.CycleTimeDays != 6 {
		t.Errorf("cycle time = %v, want 6", item.CycleTimeDays)
	}
	if item.Activated == nil || item.Activated.Format("2006-01-02") != "2025-07-16" {
		t.Errorf("activated = %v", item.Activated)
	}
	if item.Closed != nil {
		t.Errorf("closed should be absent, got %v", item.Closed)
	}
}

func TestMapWorkItem_Degraded(t *testing.T) {
	// No assignee, no dates, zero points: everything degrades, nothing errors.
	dto := WorkItemDTO{
		ID: 1,
		Fields: FieldsDTO{
			Title:       "Mystery chore",
			Type:        "Task",
			State:       "Active",
			CreatedDate: "definitely not a date",
		},
	}

	item := MapWorkItem(dto, sprint.NewCategorizer(sprint.CategoryConfig{}), completedStates())

	if item.Assignee != "Unassigned" {
		t.Errorf("assignee = %q, want Unassigned", item.Assignee)
	}
	if item.Created != nil {
		t.Errorf("unparseable created date must be absent, got %v", item.Created)
	}
	if item.CycleTimeDays != nil {
		t.Errorf("cycle time should be absent, got %d", *item.CycleTimeDays)
	}
	if item.IsCompleted {
		t.Error("Active state should not be completed")
	}
	if item.Category == "" {
		t.Error("every item must be categorized")
	}
	if item.StoryPoints != 0 {
		t.Errorf("missing points default to 0, got %f", item.StoryPoints)
	}
}

func TestBuildSprintWIQL(t *testing.T) {
	q := SprintQuery{
		IterationPath: `Tax\2025\Q3\2025_S15_Jul16-Jul29`,
		AreaPath:      `Tax\Prep`,
		WorkItemTypes: []string{"User Story", "Bug"},
		PodTag:        "pod1",
	}

	wiql := BuildSprintWIQL(q)

	for _, want := range []string{
		`[System.IterationPath] = 'Tax\2025\Q3\2025_S15_Jul16-Jul29'`,
		`[System.AreaPath] UNDER 'Tax\Prep'`,
		`[System.WorkItemType] IN ('User Story', 'Bug')`,
		`[System.Tags] CONTAINS 'pod1'`,
		"ORDER BY [System.Id]",
	} {
		if !strings.Contains(wiql, want) {
			t.Errorf("WIQL missing %q:\n%s", want, wiql)
		}
	}
}

func TestBuildSprintWIQL_EscapesQuotes(t *testing.T) {
	wiql := BuildSprintWIQL(SprintQuery{IterationPath: "Team's Sprint"})
	if !strings.Contains(wiql, "'Team''s Sprint'") {
		t.Errorf("single quote not escaped:\n%s", wiql)
	}
}
