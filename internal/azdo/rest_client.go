package azdo

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type restClient struct {
	cfg        Config
	httpClient *http.Client

	throttleMu  sync.Mutex
	lastRequest time.Time
}

func newRESTClient(cfg Config) *restClient {
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 2 * time.Second
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > 200 {
		// The work-items endpoint rejects more than 200 IDs per request.
		cfg.BatchSize = 200
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "6.0"
	}
	return &restClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

func (c *restClient) throttle() {
	c.throttleMu.Lock()
	defer c.throttleMu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling Azure DevOps request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *restClient) authenticateRequest(req *http.Request) {
	// PAT auth: empty username, token as password.
	encoded := base64.StdEncoding.EncodeToString([]byte(":" + c.cfg.Token))
	req.Header.Set("Authorization", "Basic "+encoded)
	req.Header.Set("Content-Type", "application/json")
}

func (c *restClient) apiURL(path string, params url.Values) string {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api-version", c.cfg.APIVersion)
	return fmt.Sprintf("%s/%s/_apis/%s?%s",
		strings.TrimRight(c.cfg.OrgURL, "/"), url.PathEscape(c.cfg.Project), path, params.Encode())
}

func (c *restClient) do(req *http.Request, out interface{}) error {
	c.authenticateRequest(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("azure devops request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("azure devops returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode azure devops response: %w", err)
	}
	return nil
}

// QueryWorkItemIDs runs a WIQL query and returns the matching work-item IDs.
func (c *restClient) QueryWorkItemIDs(wiql string) ([]int, error) {
	c.throttle()

	body, err := json.Marshal(map[string]string{"query": wiql})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.apiURL("wit/wiql", nil), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	var result WIQLResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(result.WorkItems))
	for _, ref := range result.WorkItems {
		ids = append(ids, ref.ID)
	}
	log.Debug().Int("count", len(ids)).Msg("WIQL query resolved work item IDs")
	return ids, nil
}

// GetWorkItems fetches detail payloads for the given IDs. Batches run
// concurrently but bounded; order of the result follows the input IDs.
func (c *restClient) GetWorkItems(ids []int) ([]WorkItemDTO, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var batches [][]int
	for start := 0; start < len(ids); start += c.cfg.BatchSize {
		end := start + c.cfg.BatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}

	results := make([][]WorkItemDTO, len(batches))
	var g errgroup.Group
	g.SetLimit(4)

	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			items, err := c.getBatch(batch)
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[int]WorkItemDTO, len(ids))
	for _, items := range results {
		for _, item := range items {
			byID[item.ID] = item
		}
	}

	ordered := make([]WorkItemDTO, 0, len(ids))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}
	return ordered, nil
}

func (c *restClient) getBatch(ids []int) ([]WorkItemDTO, error) {
	c.throttle()

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = strconv.Itoa(id)
	}

	params := url.Values{}
	params.Set("ids", strings.Join(idStrs, ","))

	req, err := http.NewRequest(http.MethodGet, c.apiURL("wit/workitems", params), nil)
	if err != nil {
		return nil, err
	}

	var result WorkItemListResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// FetchSprintItems resolves the IDs in scope for a sprint and fetches their
// details.
func (c *restClient) FetchSprintItems(q SprintQuery) ([]WorkItemDTO, error) {
	ids, err := c.QueryWorkItemIDs(BuildSprintWIQL(q))
	if err != nil {
		return nil, err
	}
	return c.GetWorkItems(ids)
}

// BuildSprintWIQL renders the WIQL statement for one sprint scope.
func BuildSprintWIQL(q SprintQuery) string {
	var b strings.Builder
	b.WriteString("SELECT [System.Id] FROM WorkItems")
	b.WriteString(fmt.Sprintf(" WHERE [System.IterationPath] = '%s'", escapeWIQL(q.IterationPath)))
	if q.AreaPath != "" {
		b.WriteString(fmt.Sprintf(" AND [System.AreaPath] UNDER '%s'", escapeWIQL(q.AreaPath)))
	}
	if len(q.WorkItemTypes) > 0 {
		quoted := make([]string, len(q.WorkItemTypes))
		for i, t := range q.WorkItemTypes {
			quoted[i] = "'" + escapeWIQL(t) + "'"
		}
		b.WriteString(" AND [System.WorkItemType] IN (" + strings.Join(quoted, ", ") + ")")
	}
	if q.PodTag != "" {
		b.WriteString(fmt.Sprintf(" AND [System.Tags] CONTAINS '%s'", escapeWIQL(q.PodTag)))
	}
	b.WriteString(" ORDER BY [System.Id]")
	return b.String()
}

// escapeWIQL doubles single quotes; WIQL has no other string escapes.
func escapeWIQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
