package getd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fundflow/model"
)

func TestSnapshotPersistence(t *testing.T) {
	flows, e := parseFlowAPI(cannedFlowAPI(10), 10)
	if e != nil {
		t.Fatal(e)
	}
	data := &model.ConceptData{UpdateTime: "2026-08-26 15:05:00", Concepts: flows}

	path := filepath.Join(t.TempDir(), "out", "concept_section_data.json")
	if e := WriteJSON(path, data); e != nil {
		t.Fatalf("WriteJSON: %+v", e)
	}

	back := new(model.ConceptData)
	if e := ReadJSON(path, back); e != nil {
		t.Fatalf("ReadJSON: %+v", e)
	}
	if back.UpdateTime != data.UpdateTime {
		t.Errorf("update_time = %q, want %q", back.UpdateTime, data.UpdateTime)
	}
	if len(back.Concepts) != 10 {
		t.Fatalf("snapshot holds %d records, want 10", len(back.Concepts))
	}
	for i, c := range back.Concepts {
		if c.TotalInflow() != c.SuperLargeInflow+c.LargeInflow {
			t.Errorf("record %d violates the total inflow invariant", i)
		}
	}
}

func TestWriteJSONHumanReadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	if e := WriteJSON(path, map[string]string{"name": "半导体", "url": "a=1&b=2"}); e != nil {
		t.Fatal(e)
	}
	raw, e := os.ReadFile(path)
	if e != nil {
		t.Fatal(e)
	}
	s := string(raw)
	if !strings.Contains(s, "半导体") {
		t.Error("multibyte text should not be escaped")
	}
	if !strings.Contains(s, "a=1&b=2") {
		t.Error("HTML escaping should be disabled")
	}
	if !strings.Contains(s, "\n  ") {
		t.Error("output should be indented")
	}
}

func TestReadJSONMissingFile(t *testing.T) {
	if e := ReadJSON(filepath.Join(t.TempDir(), "absent.json"), &struct{}{}); e == nil {
		t.Error("expected error for a missing file")
	}
}
