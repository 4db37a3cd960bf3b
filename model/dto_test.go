package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestConceptFlowTotalInflow(t *testing.T) {
	c := &ConceptFlow{SuperLargeInflow: 8.1, LargeInflow: 4.4, MainInflow: 99}
	if got := c.TotalInflow(); got != 12.5 {
		t.Errorf("TotalInflow = %v, want 12.5", got)
	}
}

func TestConceptFlowMarshalJSON(t *testing.T) {
	c := &ConceptFlow{Name: "半导体", SuperLargeInflow: 8.1, LargeInflow: 4.4}
	data, e := json.Marshal(c)
	if e != nil {
		t.Fatal(e)
	}
	s := string(data)
	if !strings.Contains(s, `"total_inflow":12.5`) {
		t.Errorf("marshalled record missing derived total_inflow: %s", s)
	}
	if !strings.Contains(s, `"name":"半导体"`) {
		t.Errorf("marshalled record missing stored fields: %s", s)
	}

	//total_inflow is derived on output only, never read back as state
	var back ConceptFlow
	if e := json.Unmarshal(data, &back); e != nil {
		t.Fatal(e)
	}
	if back.TotalInflow() != 12.5 {
		t.Errorf("roundtrip TotalInflow = %v, want 12.5", back.TotalInflow())
	}
}
