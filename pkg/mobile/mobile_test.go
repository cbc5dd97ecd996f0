package mobile

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func setupMobileCore(t *testing.T) *Core {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	core, err := Open(dbPath, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = core.Close() })
	return core
}

func TestRoadmapJSON(t *testing.T) {
	core := setupMobileCore(t)

	resp, err := core.RoadmapJSON()
	if err != nil {
		t.Fatalf("RoadmapJSON: %v", err)
	}
	var steps []map[string]any
	if err := json.Unmarshal([]byte(resp), &steps); err != nil {
		t.Fatalf("unmarshal roadmap: %v", err)
	}
	if len(steps) == 0 {
		t.Fatalf("expected seeded roadmap steps")
	}
	if steps[0]["title"] == "" {
		t.Fatalf("step missing title: %v", steps[0])
	}
}

func TestCloseNil(t *testing.T) {
	var core *Core
	if err := core.Close(); err != nil {
		t.Fatalf("Close on nil: %v", err)
	}
}

func TestExplainJSONBadPreferences(t *testing.T) {
	core := setupMobileCore(t)
	if _, err := core.ExplainJSON("AAPL", "{not json"); err == nil {
		t.Fatalf("expected error for malformed preferences")
	}
}
