package resources

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/HendryAvila/maxsub/internal/history"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestHandler(t *testing.T) (*Handler, *history.Store) {
	t.Helper()
	store, err := history.New(history.Config{DataDir: t.TempDir(), MaxInputLength: 100, RecentLimit: 5})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewHandler(store), store
}

func readText(t *testing.T, contents []mcp.ResourceContents, err error) string {
	t.Helper()
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content type = %T", contents[0])
	}
	if tc.MIMEType != "application/json" {
		t.Fatalf("MIMEType = %s, body: %s", tc.MIMEType, tc.Text)
	}
	return tc.Text
}

func readReq(uri string) mcp.ReadResourceRequest {
	req := mcp.ReadResourceRequest{}
	req.Params.URI = uri
	return req
}

func TestResourceDefinitions(t *testing.T) {
	h, _ := newTestHandler(t)
	if h.StatsResource().URI != StatsURI {
		t.Errorf("stats URI = %s", h.StatsResource().URI)
	}
	if h.RecentResource().URI != RecentURI {
		t.Errorf("recent URI = %s", h.RecentResource().URI)
	}
}

func TestHandleRecent(t *testing.T) {
	h, store := newTestHandler(t)

	contents, err := h.HandleRecent(context.Background(), readReq(RecentURI))
	text := readText(t, contents, err)
	if text != "[]" {
		t.Errorf("empty history = %s, want []", text)
	}

	if _, err := store.Add(history.AddParams{Kind: "int", Input: []string{"1", "-1", "2"}, Sum: "2", Start: 0, End: 3}); err != nil {
		t.Fatal(err)
	}
	contents, err = h.HandleRecent(context.Background(), readReq(RecentURI))
	text = readText(t, contents, err)

	var records []history.Record
	if err := json.Unmarshal([]byte(text), &records); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(records) != 1 || *records[0].Sum != "2" {
		t.Errorf("unexpected records: %s", text)
	}
}

func TestHandleStats(t *testing.T) {
	h, store := newTestHandler(t)
	if _, err := store.Add(history.AddParams{Kind: "float", Input: []string{"0.5"}, Sum: "0.5", End: 1}); err != nil {
		t.Fatal(err)
	}

	contents, err := h.HandleStats(context.Background(), readReq(StatsURI))
	text := readText(t, contents, err)
	var stats history.Stats
	if err := json.Unmarshal([]byte(text), &stats); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if stats.Total != 1 || stats.ByKind["float"] != 1 {
		t.Errorf("unexpected stats: %s", text)
	}
}
