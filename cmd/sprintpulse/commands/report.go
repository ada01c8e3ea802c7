package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"sprintpulse/internal/azdo"
	"sprintpulse/internal/sprint"
	"sprintpulse/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	reportPod     string
	reportRefresh bool
)

// sprintReport is the one-shot report document printed by the report command.
type sprintReport struct {
	Sprint    string                      `json:"sprint"`
	Start     string                      `json:"start"`
	End       string                      `json:"end"`
	Pod       string                      `json:"pod,omitempty"`
	Summary   sprint.Summary              `json:"summary"`
	Burndown  []sprint.DailyScopeSnapshot `json:"burndown"`
	LongCycle sprint.LongCycleResult      `json:"long_cycle_items"`
}

var reportCmd = &cobra.Command{
	Use:   "report <sprint>",
	Short: "Print a full sprint metrics report as JSON",
	Long: `Fetches the sprint's work items (cache first unless --refresh), derives the
summary, burndown series and long-cycle outliers, and prints the combined
report to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sprintName := args[0]

		def, ok := cfg.Workflow.FindSprint(sprintName)
		if !ok {
			return fmt.Errorf("unknown sprint %q; configured sprints: %v", sprintName, cfg.Workflow.SprintNames())
		}
		window, err := def.Window()
		if err != nil {
			return err
		}

		items, err := loadReportItems(sprintName, def.Iteration())
		if err != nil {
			return err
		}

		series, err := sprint.Reconstruct(items, window, cfg.Workflow.StateSets(), cfg.Workflow.MissingCompletionPolicy)
		if err != nil {
			return err
		}

		report := sprintReport{
			Sprint:    def.Name,
			Start:     def.Start,
			End:       def.End,
			Pod:       reportPod,
			Summary:   sprint.Summarize(items),
			Burndown:  series,
			LongCycle: sprint.LongCycleItems(items),
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// loadReportItems mirrors the MCP server's cache-first load for the one-shot
// path. A broken cache degrades to a direct fetch.
func loadReportItems(sprintName, iterationPath string) ([]sprint.WorkItem, error) {
	cache, err := store.New(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Msg("Snapshot cache unavailable for report")
		cache = nil
	} else {
		defer cache.Close()
	}

	if cache != nil && !reportRefresh {
		snap, err := cache.LoadSnapshot(sprintName, reportPod)
		if err == nil && snap != nil {
			log.Debug().Str("sprint", sprintName).Msg("Report served from cached snapshot")
			return snap.Items, nil
		}
	}

	dtos, err := azdoClient.FetchSprintItems(azdo.SprintQuery{
		IterationPath: iterationPath,
		AreaPath:      cfg.Workflow.AreaPath,
		WorkItemTypes: cfg.Workflow.WorkItemTypes,
		PodTag:        reportPod,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch sprint %q: %w", sprintName, err)
	}

	categorizer := sprint.NewCategorizer(cfg.Workflow.Categories)
	items := azdo.MapWorkItems(dtos, categorizer, cfg.Workflow.StateSets().Completed)

	if cache != nil {
		if err := cache.SaveSnapshot(sprintName, reportPod, items); err != nil {
			log.Warn().Err(err).Msg("Snapshot save failed")
		}
	}
	return items, nil
}

func init() {
	reportCmd.Flags().StringVar(&reportPod, "pod", "", "narrow the report to items tagged for a pod")
	reportCmd.Flags().BoolVar(&reportRefresh, "refresh", false, "bypass the cached snapshot and refetch")
	rootCmd.AddCommand(reportCmd)
}
