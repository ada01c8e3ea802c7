package mcp

func (s *Server) listTools() interface{} {
	sprintProp := map[string]interface{}{"type": "string", "description": "Sprint name from the team calendar (see list_sprints)"}
	podProp := map[string]interface{}{"type": "string", "description": "Optional pod tag to narrow the scope to a sub-team"}

	return map[string]interface{}{
		"tools": []interface{}{
			map[string]interface{}{
				"name":        "list_sprints",
				"description": "List the configured sprint calendar: names, start and end dates, and which sprints have a cached snapshot.",
				"inputSchema": map[string]interface{}{
					"type":       "object",
					"properties": map[string]interface{}{},
				},
			},
			map[string]interface{}{
				"name":        "fetch_sprint",
				"description": "Fetch the work items for a sprint from Azure DevOps and cache them. Subsequent metric tools reuse the cached snapshot; set force_refresh to pull fresh data.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprint":        sprintProp,
						"pod":           podProp,
						"force_refresh": map[string]interface{}{"type": "boolean", "description": "Bypass the cached snapshot and refetch from Azure DevOps"},
					},
					"required": []string{"sprint"},
				},
			},
			map[string]interface{}{
				"name":        "sprint_summary",
				"description": "Sprint rollup: completion rates by items and points, cycle-time average and median, and per-assignee and per-category breakdowns of completed work.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprint": sprintProp,
						"pod":    podProp,
					},
					"required": []string{"sprint"},
				},
			},
			map[string]interface{}{
				"name":        "burndown",
				"description": "Reconstruct the daily burndown/burnup series for a sprint from work-item state and completion dates. Remaining and completed always sum to the fixed total scope.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprint": sprintProp,
						"pod":    podProp,
					},
					"required": []string{"sprint"},
				},
			},
			map[string]interface{}{
				"name":        "cycle_time",
				"description": "Per-item cycle times (activation to completion, in whole days) for a sprint, with mean and median. Items without usable dates are listed as unmeasured.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprint": sprintProp,
						"pod":    podProp,
					},
					"required": []string{"sprint"},
				},
			},
			map[string]interface{}{
				"name":        "categories",
				"description": "Work category breakdown (Bug, UX, QA, Frontend, Backend) of a sprint's completed items, by count and story points.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprint": sprintProp,
						"pod":    podProp,
					},
					"required": []string{"sprint"},
				},
			},
			map[string]interface{}{
				"name":        "long_cycle_items",
				"description": "Flag work items whose cycle time exceeds the sprint's mean plus one standard deviation, sorted slowest first.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprint": sprintProp,
						"pod":    podProp,
					},
					"required": []string{"sprint"},
				},
			},
			map[string]interface{}{
				"name":        "velocity",
				"description": "Delivered items and story points per sprint across a range of sprints, in calendar order. Defaults to the whole configured calendar.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprints": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Sprint names to include, in order. Omit to use the full calendar.",
						},
						"pod": podProp,
					},
				},
			},
			map[string]interface{}{
				"name":        "invalidate_snapshot",
				"description": "Drop the cached snapshot for a sprint so the next metric call refetches from Azure DevOps.",
				"inputSchema": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"sprint": sprintProp,
						"pod":    podProp,
					},
					"required": []string{"sprint"},
				},
			},
		},
	}
}
