package azdo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc, batchSize int) *restClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newRESTClient(Config{
		OrgURL:       srv.URL,
		Project:      "Tax",
		Token:        "secret-pat",
		RequestDelay: time.Millisecond,
		BatchSize:    batchSize,
	})
}

func TestQueryWorkItemIDs(t *testing.T) {
	var gotAuth, gotQuery string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.Contains(r.URL.Path, "wit/wiql") {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotQuery = body["query"]
		_ = json.NewEncoder(w).Encode(WIQLResponse{
			WorkItems: []WorkItemRef{{ID: 3}, {ID: 1}, {ID: 7}},
		})
	}, 0)

	ids, err := c.QueryWorkItemIDs("SELECT [System.Id] FROM WorkItems")
	if err != nil {
		t.Fatalf("QueryWorkItemIDs: %v", err)
	}
	if len(ids) != 3 || ids[0] != 3 || ids[1] != 1 || ids[2] != 7 {
		t.Errorf("ids = %v", ids)
	}
	if gotQuery != "SELECT [System.Id] FROM WorkItems" {
		t.Errorf("query = %q", gotQuery)
	}
	// base64(":secret-pat")
	if gotAuth != "Basic OnNlY3JldC1wYXQ=" {
		t.Errorf("auth header = %q", gotAuth)
	}
}

func TestGetWorkItems_BatchesAndPreservesOrder(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		idParam := r.URL.Query().Get("ids")
		if len(strings.Split(idParam, ",")) > 2 {
			t.Errorf("batch larger than configured size: %q", idParam)
		}
		var value []WorkItemDTO
		for _, s := range strings.Split(idParam, ",") {
			id, err := strconv.Atoi(s)
			if err != nil {
				t.Fatalf("bad id %q", s)
			}
			value = append(value, WorkItemDTO{ID: id})
		}
		_ = json.NewEncoder(w).Encode(WorkItemListResponse{Count: len(value), Value: value})
	}, 2)

	items, err := c.GetWorkItems([]int{5, 2, 9, 1, 4})
	if err != nil {
		t.Fatalf("GetWorkItems: %v", err)
	}
	want := []int{5, 2, 9, 1, 4}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, item := range items {
		if item.ID != want[i] {
			t.Errorf("items[%d].ID = %d, want %d", i, item.ID, want[i])
		}
	}
}

func TestGetWorkItems_Empty(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for empty ID list")
	}, 0)

	items, err := c.GetWorkItems(nil)
	if err != nil || items != nil {
		t.Errorf("got (%v, %v), want (nil, nil)", items, err)
	}
}

func TestDoReportsHTTPErrors(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "TF401349: invalid query", http.StatusBadRequest)
	}, 0)

	_, err := c.QueryWorkItemIDs("garbage")
	if err == nil {
		t.Fatal("expected error on 400")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "TF401349") {
		t.Errorf("error should carry status and body: %v", err)
	}
}
