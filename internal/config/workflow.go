package config

import (
	"fmt"
	"os"

	"sprintpulse/internal/sprint"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// SprintDef names one sprint window in the team calendar. Dates are
// YYYY-MM-DD strings in the file; Window parses and validates them.
// IterationPath defaults to the sprint name when unset.
type SprintDef struct {
	Name          string `yaml:"name"`
	Start         string `yaml:"start"`
	End           string `yaml:"end"`
	IterationPath string `yaml:"iteration_path,omitempty"`
}

// Iteration returns the Azure DevOps iteration path for the sprint.
func (s SprintDef) Iteration() string {
	if s.IterationPath != "" {
		return s.IterationPath
	}
	return s.Name
}

// Window converts the definition into a sprint window.
func (s SprintDef) Window() (sprint.Window, error) {
	start, ok := sprint.ParseDate(s.Start)
	if !ok {
		return sprint.Window{}, fmt.Errorf("sprint %q: invalid start date %q", s.Name, s.Start)
	}
	end, ok := sprint.ParseDate(s.End)
	if !ok {
		return sprint.Window{}, fmt.Errorf("sprint %q: invalid end date %q", s.Name, s.End)
	}
	if start.After(end) {
		return sprint.Window{}, fmt.Errorf("sprint %q: start %s after end %s", s.Name, s.Start, s.End)
	}
	return sprint.Window{Start: start, End: end}, nil
}

// Workflow is the externally supplied tracker vocabulary: which states mean
// "still open" vs "done", how to classify items, how to place dateless
// completions, and the sprint calendar.
type Workflow struct {
	RemainingStates         []string                       `yaml:"remaining_states"`
	CompletedStates         []string                       `yaml:"completed_states"`
	WorkItemTypes           []string                       `yaml:"work_item_types"`
	MissingCompletionPolicy sprint.MissingCompletionPolicy `yaml:"missing_completion_policy"`
	AreaPath                string                         `yaml:"area_path,omitempty"`
	Categories              sprint.CategoryConfig          `yaml:"categories"`
	Sprints                 []SprintDef                    `yaml:"sprints"`
}

// DefaultWorkflow returns the built-in vocabulary, matching the historical
// dashboard configuration.
func DefaultWorkflow() Workflow {
	return Workflow{
		RemainingStates:         []string{"Active", "Ready", "New"},
		CompletedStates:         []string{"Closed", "Resolved"},
		WorkItemTypes:           []string{"User Story", "Bug", "Task", "Investigate"},
		MissingCompletionPolicy: sprint.PolicyMidpoint,
		Categories:              sprint.DefaultCategoryConfig(),
	}
}

// LoadWorkflow reads the workflow YAML file, filling unset fields from the
// defaults. A missing file is not an error: the defaults apply wholesale.
func LoadWorkflow(path string) (Workflow, error) {
	defaults := DefaultWorkflow()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", path).Msg("No workflow config file, using defaults")
			return defaults, nil
		}
		return Workflow{}, fmt.Errorf("read workflow config %s: %w", path, err)
	}

	var w Workflow
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Workflow{}, fmt.Errorf("parse workflow config %s: %w", path, err)
	}

	if w.RemainingStates == nil {
		w.RemainingStates = defaults.RemainingStates
	}
	if w.CompletedStates == nil {
		w.CompletedStates = defaults.CompletedStates
	}
	if w.WorkItemTypes == nil {
		w.WorkItemTypes = defaults.WorkItemTypes
	}
	if w.MissingCompletionPolicy == "" {
		w.MissingCompletionPolicy = defaults.MissingCompletionPolicy
	}

	// Validate sprint windows up front so a bad calendar fails at startup,
	// not in the middle of a tool call.
	for _, def := range w.Sprints {
		if _, err := def.Window(); err != nil {
			return Workflow{}, err
		}
	}

	log.Info().Str("path", path).Int("sprints", len(w.Sprints)).Msg("Loaded workflow config")
	return w, nil
}

// StateSets builds the remaining/completed partition for the reconstructor.
func (w Workflow) StateSets() sprint.StateSets {
	return sprint.NewStateSets(w.RemainingStates, w.CompletedStates)
}

// FindSprint resolves a sprint by name from the calendar.
func (w Workflow) FindSprint(name string) (SprintDef, bool) {
	for _, def := range w.Sprints {
		if def.Name == name {
			return def, true
		}
	}
	return SprintDef{}, false
}

// SprintNames returns the calendar order of sprint names.
func (w Workflow) SprintNames() []string {
	names := make([]string, 0, len(w.Sprints))
	for _, def := range w.Sprints {
		names = append(names, def.Name)
	}
	return names
}
