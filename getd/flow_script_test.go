package getd

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const scriptPage = `<html><head>
<script>var pageconfig = {"theme":"light"};</script>
<script>
var rankdata = [
 {"code":"BK1036","name":"半导体","f3":3.21,"主力净流入":"12.5亿","超大单净流入":"8.1亿","大单净流入":"4.4亿"},
 {"code":"BK1031","name":"光伏设备","f3":-1.1,"主力净流入":"9000万","超大单净流入":"0.6亿","大单净流入":"0.3亿"}
];
</script>
<script>var menudata = ["首页","行情"];</script>
</head><body></body></html>`

func TestParseFlowScripts(t *testing.T) {
	doc, e := goquery.NewDocumentFromReader(strings.NewReader(scriptPage))
	if e != nil {
		t.Fatal(e)
	}
	flows, e := parseFlowScripts(doc)
	if e != nil {
		t.Fatalf("parseFlowScripts: %+v", e)
	}
	if len(flows) != 2 {
		t.Fatalf("got %d records, want 2", len(flows))
	}
	c := flows[0]
	if c.Code != "BK1036" || c.Name != "半导体" {
		t.Errorf("unexpected record: %+v", c)
	}
	if c.ChangeRate != 3.21 || c.MainInflow != 12.5 || c.SuperLargeInflow != 8.1 {
		t.Errorf("alias resolution failed: %+v", c)
	}
	if flows[1].MainInflow != 0.9 {
		t.Errorf("unit normalization failed: %+v", flows[1])
	}
}

func TestParseFlowScriptsRejectsNonRecords(t *testing.T) {
	//string arrays and option objects are not record-shaped
	page := `<html><script>var listdata = ["a","b"];</script>
<script>var chartdata = [{"x":1,"y":2}];</script></html>`
	doc, e := goquery.NewDocumentFromReader(strings.NewReader(page))
	if e != nil {
		t.Fatal(e)
	}
	if _, e := parseFlowScripts(doc); e == nil {
		t.Error("expected error when no array is record-shaped")
	}
}

func TestScriptArrays(t *testing.T) {
	doc, e := goquery.NewDocumentFromReader(strings.NewReader(scriptPage))
	if e != nil {
		t.Fatal(e)
	}
	arrays := scriptArrays(doc)
	if len(arrays) < 2 {
		t.Fatalf("captured %d arrays, want at least 2", len(arrays))
	}
	recordShaped := 0
	for _, a := range arrays {
		if isRecordArray(a) {
			recordShaped++
		}
	}
	if recordShaped != 1 {
		t.Errorf("record-shaped arrays = %d, want 1", recordShaped)
	}
}
