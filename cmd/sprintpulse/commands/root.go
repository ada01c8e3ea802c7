package commands

import (
	"sprintpulse/internal/azdo"
	"sprintpulse/internal/config"
	"sprintpulse/internal/logging"
	"sprintpulse/internal/mcp"
	"sprintpulse/internal/store"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	azdoClient azdo.Client
)

var rootCmd = &cobra.Command{
	Use:   "sprintpulse",
	Short: "SprintPulse is a sprint-metrics MCP Server for Azure DevOps",
	Long: `A specialized MCP Server that reconstructs sprint burndowns, cycle times,
work categories and long-cycle outliers from Azure DevOps work items.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		// Load configuration
		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		// Initialize Azure DevOps client
		azdoClient = azdo.NewClient(cfg.AzDO)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("SprintPulse starting")
	},
	Run: func(cmd *cobra.Command, args []string) {
		cache, err := store.New(cfg.DBPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.DBPath).Msg("Snapshot cache unavailable, serving without it")
			cache = nil
		} else {
			defer cache.Close()
		}

		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(azdoClient, cfg.Workflow, cache)
		if err := server.Serve(); err != nil {
			log.Fatal().Err(err).Msg("MCP Server terminated")
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
