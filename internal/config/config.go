package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"sprintpulse/internal/azdo"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration: connection settings
// from the environment, local data paths, and the workflow vocabulary file.
type AppConfig struct {
	AzDO     azdo.Config
	Workflow Workflow
	DataPath string
	DBPath   string
}

// Load loads the configuration from .env files, environment variables and the
// optional workflow YAML file.
func Load() (*AppConfig, error) {
	// 1. Try the binary's directory first (the server is usually launched by
	// an MCP host with an arbitrary working directory).
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to the working directory (development/go run).
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file in working directory, relying on environment variables")
	}

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	if err := os.MkdirAll(dataPath, 0755); err != nil {
		log.Warn().Err(err).Str("path", dataPath).Msg("Failed to create data directory")
	}

	delaySecs, _ := strconv.Atoi(getEnv("AZDO_REQUEST_DELAY_SECONDS", "2"))
	batchSize, _ := strconv.Atoi(getEnv("AZDO_BATCH_SIZE", "200"))

	workflowPath := getEnv("WORKFLOW_CONFIG", filepath.Join(dataPath, "workflow.yaml"))
	workflow, err := LoadWorkflow(workflowPath)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		AzDO: azdo.Config{
			OrgURL:       getEnv("AZDO_ORG_URL", ""),
			Project:      getEnv("AZDO_PROJECT", ""),
			Token:        getEnv("AZDO_PAT", ""),
			APIVersion:   getEnv("AZDO_API_VERSION", "6.0"),
			RequestDelay: time.Duration(delaySecs) * time.Second,
			BatchSize:    batchSize,
		},
		Workflow: workflow,
		DataPath: dataPath,
		DBPath:   filepath.Join(dataPath, "sprintpulse.db"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
