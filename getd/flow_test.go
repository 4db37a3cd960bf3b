package getd

import (
	"fmt"
	"strings"
	"testing"

	"fundflow/model"

	"github.com/pkg/errors"
)

func cannedFlowAPI(n int) []byte {
	items := make([]string, n)
	for i := 0; i < n; i++ {
		items[i] = fmt.Sprintf(`{"f12":"BK%04d","f14":"概念%d","f2":%d.5,"f3":%d.1,`+
			`"f62":%d,"f184":10.0,"f66":%d,"f69":5.0,"f72":%d,"f75":3.0,`+
			`"f78":1.0,"f81":1.0,"f84":0.5,"f87":0.5,"f204":"股票%d","f205":"60%04d","f124":1639125329}`,
			i, i, i+10, i, (i+1)*100, (i+1)*60, (i+1)*40, i, i)
	}
	return []byte(fmt.Sprintf(`{"rc":0,"data":{"total":%d,"diff":[%s]}}`, n, strings.Join(items, ",")))
}

func TestParseFlowAPI(t *testing.T) {
	flows, e := parseFlowAPI(cannedFlowAPI(10), 10)
	if e != nil {
		t.Fatalf("parseFlowAPI: %+v", e)
	}
	if len(flows) != 10 {
		t.Fatalf("got %d records, want 10", len(flows))
	}
	for i, f := range flows {
		want := f.SuperLargeInflow + f.LargeInflow
		if f.TotalInflow() != want {
			t.Errorf("record %d TotalInflow = %v, want %v", i, f.TotalInflow(), want)
		}
	}
	if flows[0].Name != "概念0" || flows[0].Code != "BK0000" {
		t.Errorf("unexpected first record: %+v", flows[0])
	}
	if flows[3].MainInflow != 400 {
		t.Errorf("field-code mapping wrong: %+v", flows[3])
	}
}

func TestParseFlowAPITruncates(t *testing.T) {
	flows, e := parseFlowAPI(cannedFlowAPI(20), 10)
	if e != nil {
		t.Fatalf("parseFlowAPI: %+v", e)
	}
	if len(flows) != 10 {
		t.Errorf("got %d records, want top 10 of 20", len(flows))
	}
}

func TestParseFlowAPIErrors(t *testing.T) {
	if _, e := parseFlowAPI([]byte(`{"rc":1,"data":null}`), 10); e == nil {
		t.Error("expected error for non-zero rc")
	}
	if _, e := parseFlowAPI([]byte(`{"rc":0,"data":{}}`), 10); e == nil {
		t.Error("expected error for missing diff")
	}
	if _, e := parseFlowAPI([]byte(`{"rc":0,"data":{"diff":[]}}`), 10); e == nil {
		t.Error("expected error for empty ranking")
	}
}

type fakeConceptSource struct {
	id    string
	flows []*model.ConceptFlow
	err   error
	calls int
}

func (f *fakeConceptSource) name() string { return f.id }

func (f *fakeConceptSource) fetch() ([]*model.ConceptFlow, error) {
	f.calls++
	return f.flows, f.err
}

func TestConceptSourceFallback(t *testing.T) {
	primary := &fakeConceptSource{id: "primary", err: errors.New("connection reset")}
	secondary := &fakeConceptSource{id: "secondary",
		flows: []*model.ConceptFlow{{Name: "半导体"}}}
	tertiary := &fakeConceptSource{id: "tertiary"}

	flows := getConceptFlows(primary, secondary, tertiary)
	if len(flows) != 1 || flows[0].Name != "半导体" {
		t.Fatalf("unexpected result: %+v", flows)
	}
	if primary.calls != 1 || secondary.calls != 1 {
		t.Errorf("calls: primary=%d secondary=%d, want 1/1", primary.calls, secondary.calls)
	}
	if tertiary.calls != 0 {
		t.Errorf("tertiary should not be invoked after a non-empty source")
	}
}

func TestConceptSourceAllFail(t *testing.T) {
	a := &fakeConceptSource{id: "a", err: errors.New("boom")}
	b := &fakeConceptSource{id: "b"} //succeeds but empty
	if flows := getConceptFlows(a, b); flows != nil {
		t.Fatalf("expected nil when every source fails, got %+v", flows)
	}
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("each source should be tried exactly once: a=%d b=%d", a.calls, b.calls)
	}
}
