package getd

import (
	"bytes"
	"fmt"
	"html/template"

	"fundflow/conf"
	"fundflow/model"

	"github.com/montanaflynn/stats"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

//reportTemplate renders the self-contained summary page: today's
//ranking, the trailing-window frequency ranking and a stats box.
//No external assets are referenced.
var reportFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"cls": func(f float64) string {
		if f >= 0 {
			return "up"
		}
		return "down"
	},
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(`<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="UTF-8">
<title>概念板块资金流向报告</title>
<style>
body { font-family: "Microsoft YaHei", sans-serif; margin: 2em; background: #fafafa; }
h1, h2 { color: #333; }
table { border-collapse: collapse; margin-bottom: 2em; background: #fff; }
th, td { border: 1px solid #ccc; padding: 6px 12px; font-size: 14px; text-align: right; }
th { background: #eee; }
td:first-child, td:nth-child(2) { text-align: left; }
.up { color: #c00; }
.down { color: #090; }
.stats { background: #fff; border: 1px solid #ccc; padding: 1em; display: inline-block; }
</style>
</head>
<body>
<h1>概念板块资金流向报告</h1>
<p>更新时间: {{.UpdateTime}}</p>

<h2>今日资金流向排行</h2>
<table>
<tr><th>排名</th><th>板块</th><th>涨跌幅%</th><th>主力净流入(亿)</th><th>超大单+大单(亿)</th><th>领涨股</th></tr>
{{range $i, $c := .Concepts}}
<tr>
<td>{{inc $i}}</td>
<td>{{$c.Name}}</td>
<td class="{{cls $c.ChangeRate}}">{{printf "%.2f" $c.ChangeRate}}</td>
<td>{{printf "%.2f" $c.MainInflow}}</td>
<td>{{printf "%.2f" $c.TotalInflow}}</td>
<td>{{$c.LeadStock}}</td>
</tr>
{{end}}
</table>

{{if .Ranking}}
<h2>近{{.Window}}日上榜频率</h2>
<table>
<tr><th>板块</th><th>上榜次数</th><th>频率%</th></tr>
{{range .Ranking}}
<tr><td>{{.Name}}</td><td>{{.Count}}</td><td>{{printf "%.0f" .Frequency}}</td></tr>
{{end}}
</table>
{{end}}

<div class="stats">
<h2>统计</h2>
<p>平均涨跌幅: {{printf "%.2f" .MeanChange}}%　中位数: {{printf "%.2f" .MedianChange}}%</p>
<p>主力净流入合计: {{printf "%.2f" .SumMainInflow}}亿</p>
</div>
</body>
</html>
`))

type reportData struct {
	UpdateTime    string
	Concepts      []*model.ConceptFlow
	Ranking       []*model.ConceptFreq
	Window        int
	MeanChange    float64
	MedianChange  float64
	SumMainInflow float64
}

//renderReport is a pure function from the current snapshot plus the
//frequency ranking to a self-contained HTML document.
func renderReport(data *model.ConceptData, ranking []*model.ConceptFreq) (html string, e error) {
	rd := &reportData{
		UpdateTime: data.UpdateTime,
		Concepts:   data.Concepts,
		Ranking:    ranking,
		Window:     conf.Args.History.Window,
	}
	var changes, inflows []float64
	for _, c := range data.Concepts {
		changes = append(changes, c.ChangeRate)
		inflows = append(inflows, c.MainInflow)
	}
	if len(changes) > 0 {
		if rd.MeanChange, e = stats.Mean(changes); e != nil {
			return "", errors.Wrap(e, "failed to compute mean change rate")
		}
		if rd.MedianChange, e = stats.Median(changes); e != nil {
			return "", errors.Wrap(e, "failed to compute median change rate")
		}
		if rd.SumMainInflow, e = stats.Sum(inflows); e != nil {
			return "", errors.Wrap(e, "failed to sum main inflow")
		}
	}
	buf := new(bytes.Buffer)
	if e = reportTemplate.Execute(buf, rd); e != nil {
		return "", errors.Wrap(e, "failed to execute report template")
	}
	return buf.String(), nil
}

//logConceptSummary writes the end-of-run tables to the log stream.
func logConceptSummary(flows []*model.ConceptFlow, ranking []*model.ConceptFreq) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Rank", "Concept", "Change%", "Main Inflow", "Total Inflow", "Lead Stock"})
	for i, c := range flows {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			c.Name,
			fmt.Sprintf("%.2f", c.ChangeRate),
			fmt.Sprintf("%.2f", c.MainInflow),
			fmt.Sprintf("%.2f", c.TotalInflow()),
			c.LeadStock,
		})
	}
	table.Render()
	log.Infof("today's concept ranking:\n%s", buf.String())

	if len(ranking) == 0 {
		return
	}
	buf.Reset()
	table = tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Concept", "Count", "Freq%"})
	for _, r := range ranking {
		table.Append([]string{r.Name, fmt.Sprintf("%d", r.Count), fmt.Sprintf("%.0f", r.Frequency)})
	}
	table.Render()
	log.Infof("trailing-window frequency ranking:\n%s", buf.String())
}
