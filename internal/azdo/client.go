package azdo

import (
	"time"
)

// Client is the interface for pulling work items from Azure DevOps.
type Client interface {
	// QueryWorkItemIDs runs a WIQL query and returns the matching IDs.
	QueryWorkItemIDs(wiql string) ([]int, error)
	// GetWorkItems fetches full field payloads for the given IDs, batching
	// as needed.
	GetWorkItems(ids []int) ([]WorkItemDTO, error)
	// FetchSprintItems composes the two calls for one sprint scope.
	FetchSprintItems(q SprintQuery) ([]WorkItemDTO, error)
}

// Config holds the connection settings for Azure DevOps.
type Config struct {
	// OrgURL is the organization base, e.g. https://dev.azure.com/acme.
	OrgURL  string
	Project string
	// Token is a Personal Access Token, sent as basic-auth password.
	Token      string
	APIVersion string

	RequestDelay time.Duration
	BatchSize    int
}

// SprintQuery scopes a fetch to one team's sprint. PodTag optionally narrows
// to items tagged for a sub-team pod.
type SprintQuery struct {
	IterationPath string
	AreaPath      string
	WorkItemTypes []string
	PodTag        string
}

// NewClient creates a REST client for the given configuration.
func NewClient(cfg Config) Client {
	return newRESTClient(cfg)
}
