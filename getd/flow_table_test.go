package getd

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

const rankPage = `<html><body>
<table><tr><th>友情链接</th></tr><tr><td>首页</td></tr></table>
<table>
<thead><tr><th>序号</th><th>板块名称</th><th>涨跌幅</th><th>主力净流入</th>
<th>超大单净流入</th><th>大单净流入</th><th>主力净流入最大股</th></tr></thead>
<tbody>
<tr><td>1</td><td>半导体</td><td>3.21%</td><td>12.5亿</td><td>8.1亿</td><td>4.4亿</td><td>中芯国际</td></tr>
<tr><td>2</td><td>光伏设备</td><td>-1.10%</td><td>9000万</td><td>0.6亿</td><td>0.3亿</td><td>隆基绿能</td></tr>
<tr><td></td><td>广告行</td><td></td><td></td><td></td><td></td><td></td></tr>
<tr><td>3</td><td>名称</td><td>涨跌幅</td><td></td><td></td><td></td><td></td></tr>
</tbody>
</table>
</body></html>`

func TestParseFlowTable(t *testing.T) {
	doc, e := goquery.NewDocumentFromReader(strings.NewReader(rankPage))
	if e != nil {
		t.Fatal(e)
	}
	flows, e := parseFlowTable(doc)
	if e != nil {
		t.Fatalf("parseFlowTable: %+v", e)
	}
	if len(flows) != 2 {
		t.Fatalf("got %d records, want 2 (filler and header rows skipped)", len(flows))
	}
	c := flows[0]
	if c.Name != "半导体" || c.ChangeRate != 3.21 || c.MainInflow != 12.5 {
		t.Errorf("unexpected first record: %+v", c)
	}
	if c.SuperLargeInflow != 8.1 || c.LargeInflow != 4.4 || c.LeadStock != "中芯国际" {
		t.Errorf("unexpected first record: %+v", c)
	}
	if got := c.TotalInflow(); got != 12.5 {
		t.Errorf("TotalInflow = %v, want 12.5", got)
	}
	//万-denominated cell collapses to the canonical 亿 unit
	if flows[1].MainInflow != 0.9 {
		t.Errorf("unit normalization failed: %+v", flows[1])
	}
	if flows[1].ChangeRate != -1.1 {
		t.Errorf("percentage parsing failed: %+v", flows[1])
	}
}

func TestParseFlowTableNoTable(t *testing.T) {
	doc, e := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>维护中</p></body></html>`))
	if e != nil {
		t.Fatal(e)
	}
	if _, e := parseFlowTable(doc); e == nil {
		t.Error("expected error when no recognizable table exists")
	}
}
