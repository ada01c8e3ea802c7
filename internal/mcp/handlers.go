package mcp

import (
	"encoding/json"
	"fmt"

	"sprintpulse/internal/azdo"
	"sprintpulse/internal/config"
	"sprintpulse/internal/sprint"

	"github.com/rs/zerolog/log"
)

func (s *Server) callTool(params json.RawMessage) (interface{}, interface{}) {
	var call struct {
		Name      string                 `json:"name"`
		Arguments map[string]interface{} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		return nil, map[string]interface{}{"code": -32602, "message": "Invalid params"}
	}

	sprintName, _ := call.Arguments["sprint"].(string)
	pod, _ := call.Arguments["pod"].(string)

	var data interface{}
	var err error

	switch call.Name {
	case "list_sprints":
		data, err = s.handleListSprints()
	case "fetch_sprint":
		force, _ := call.Arguments["force_refresh"].(bool)
		data, err = s.handleFetchSprint(sprintName, pod, force)
	case "sprint_summary":
		data, err = s.handleSprintSummary(sprintName, pod)
	case "burndown":
		data, err = s.handleBurndown(sprintName, pod)
	case "cycle_time":
		data, err = s.handleCycleTime(sprintName, pod)
	case "categories":
		data, err = s.handleCategories(sprintName, pod)
	case "long_cycle_items":
		data, err = s.handleLongCycleItems(sprintName, pod)
	case "velocity":
		data, err = s.handleVelocity(stringSlice(call.Arguments["sprints"]), pod)
	case "invalidate_snapshot":
		data, err = s.handleInvalidateSnapshot(sprintName, pod)
	default:
		return nil, map[string]interface{}{"code": -32601, "message": "Tool not found"}
	}

	if err != nil {
		return nil, map[string]interface{}{"code": -32000, "message": err.Error()}
	}

	return map[string]interface{}{
		"content": []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.formatResult(data),
			},
		},
	}, nil
}

// loadItems resolves a sprint's item set, cache first. A cache miss (or
// forced refresh) fetches from Azure DevOps, derives the metric fields, and
// stores the snapshot for the next call.
func (s *Server) loadItems(sprintName, pod string, forceRefresh bool) ([]sprint.WorkItem, config.SprintDef, error) {
	def, ok := s.workflow.FindSprint(sprintName)
	if !ok {
		return nil, config.SprintDef{}, fmt.Errorf("unknown sprint %q; see list_sprints for the calendar", sprintName)
	}

	if s.cache != nil && !forceRefresh {
		snap, err := s.cache.LoadSnapshot(sprintName, pod)
		if err != nil {
			log.Warn().Err(err).Str("sprint", sprintName).Msg("Snapshot load failed, refetching")
		} else if snap != nil {
			log.Debug().Str("sprint", sprintName).Int("items", len(snap.Items)).Msg("Serving cached snapshot")
			return snap.Items, def, nil
		}
	}

	dtos, err := s.azdo.FetchSprintItems(azdo.SprintQuery{
		IterationPath: def.Iteration(),
		AreaPath:      s.workflow.AreaPath,
		WorkItemTypes: s.workflow.WorkItemTypes,
		PodTag:        pod,
	})
	if err != nil {
		return nil, config.SprintDef{}, fmt.Errorf("fetch sprint %q: %w", sprintName, err)
	}

	categorizer := sprint.NewCategorizer(s.workflow.Categories)
	items := azdo.MapWorkItems(dtos, categorizer, s.workflow.StateSets().Completed)

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(sprintName, pod, items); err != nil {
			log.Warn().Err(err).Str("sprint", sprintName).Msg("Snapshot save failed")
		}
	}
	return items, def, nil
}

func (s *Server) handleListSprints() (interface{}, error) {
	cached := map[string]bool{}
	if s.cache != nil {
		snaps, err := s.cache.ListSnapshots()
		if err != nil {
			return nil, err
		}
		for _, snap := range snaps {
			cached[snap.Sprint] = true
		}
	}

	type sprintEntry struct {
		Name   string `json:"name"`
		Start  string `json:"start"`
		End    string `json:"end"`
		Cached bool   `json:"cached"`
	}
	entries := make([]sprintEntry, 0, len(s.workflow.Sprints))
	for _, def := range s.workflow.Sprints {
		entries = append(entries, sprintEntry{
			Name:   def.Name,
			Start:  def.Start,
			End:    def.End,
			Cached: cached[def.Name],
		})
	}
	return map[string]interface{}{"sprints": entries}, nil
}

func (s *Server) handleFetchSprint(sprintName, pod string, forceRefresh bool) (interface{}, error) {
	items, def, err := s.loadItems(sprintName, pod, forceRefresh)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"sprint": def.Name,
		"start":  def.Start,
		"end":    def.End,
		"count":  len(items),
		"items":  items,
	}, nil
}

func (s *Server) handleSprintSummary(sprintName, pod string) (interface{}, error) {
	items, def, err := s.loadItems(sprintName, pod, false)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"sprint":  def.Name,
		"summary": sprint.Summarize(items),
	}, nil
}

func (s *Server) handleBurndown(sprintName, pod string) (interface{}, error) {
	items, def, err := s.loadItems(sprintName, pod, false)
	if err != nil {
		return nil, err
	}
	window, err := def.Window()
	if err != nil {
		return nil, err
	}
	series, err := sprint.Reconstruct(items, window, s.workflow.StateSets(), s.workflow.MissingCompletionPolicy)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"sprint": def.Name,
		"policy": s.workflow.MissingCompletionPolicy,
		"series": series,
	}, nil
}

func (s *Server) handleCycleTime(sprintName, pod string) (interface{}, error) {
	items, def, err := s.loadItems(sprintName, pod, false)
	if err != nil {
		return nil, err
	}

	type measuredItem struct {
		ID            int             `json:"id"`
		Title         string          `json:"title"`
		Assignee      string          `json:"assignee"`
		Category      sprint.Category `json:"category"`
		CycleTimeDays int             `json:"cycle_time_days"`
	}
	var measured []measuredItem
	var unmeasured []int
	var days []int
	var durations []float64
	for _, item := range items {
		if item.CycleTimeDays == nil {
			unmeasured = append(unmeasured, item.ID)
			continue
		}
		measured = append(measured, measuredItem{
			ID:            item.ID,
			Title:         item.Title,
			Assignee:      item.Assignee,
			Category:      item.Category,
			CycleTimeDays: *item.CycleTimeDays,
		})
		days = append(days, *item.CycleTimeDays)
		durations = append(durations, float64(*item.CycleTimeDays))
	}

	return map[string]interface{}{
		"sprint":           def.Name,
		"sample_size":      len(measured),
		"mean_days":        sprint.Mean(durations),
		"median_days":      sprint.MedianDiscrete(days),
		"items":            measured,
		"unmeasured_items": unmeasured,
	}, nil
}

func (s *Server) handleCategories(sprintName, pod string) (interface{}, error) {
	items, def, err := s.loadItems(sprintName, pod, false)
	if err != nil {
		return nil, err
	}
	summary := sprint.Summarize(items)
	return map[string]interface{}{
		"sprint":          def.Name,
		"completed_items": summary.CompletedItems,
		"categories":      summary.Categories,
	}, nil
}

func (s *Server) handleLongCycleItems(sprintName, pod string) (interface{}, error) {
	items, def, err := s.loadItems(sprintName, pod, false)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"sprint": def.Name,
		"report": sprint.LongCycleItems(items),
	}, nil
}

func (s *Server) handleVelocity(sprints []string, pod string) (interface{}, error) {
	if len(sprints) == 0 {
		sprints = s.workflow.SprintNames()
	}

	itemsBySprint := make(map[string][]sprint.WorkItem, len(sprints))
	for _, name := range sprints {
		items, _, err := s.loadItems(name, pod, false)
		if err != nil {
			return nil, err
		}
		itemsBySprint[name] = items
	}

	return map[string]interface{}{
		"velocity": sprint.Velocity(sprints, itemsBySprint),
	}, nil
}

func (s *Server) handleInvalidateSnapshot(sprintName, pod string) (interface{}, error) {
	if s.cache == nil {
		return nil, fmt.Errorf("no snapshot cache configured")
	}
	if err := s.cache.InvalidateSnapshot(sprintName, pod); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"sprint":      sprintName,
		"pod":         pod,
		"invalidated": true,
	}, nil
}

// stringSlice coerces a JSON array argument into []string, skipping any
// non-string members.
func stringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if str, ok := item.(string); ok {
			out = append(out, str)
		}
	}
	return out
}
