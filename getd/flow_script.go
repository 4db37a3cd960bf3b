package getd

import (
	"regexp"
	"strings"

	"fundflow/conf"
	"fundflow/model"
	"fundflow/util"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

//array-valued assignments inside page scripts that may carry the data
//the page renders client-side.
var scriptArrayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)var\s+\w*data\w*\s*=\s*(\[.*?\]);`),
	regexp.MustCompile(`(?s)var\s+\w*pool\w*\s*=\s*(\[.*?\]);`),
	regexp.MustCompile(`(?s)var\s+\w*list\w*\s*=\s*(\[.*?\]);`),
}

//keys whose presence marks an object as a record rather than page chrome.
var recordIDKeys = []string{"code", "codes", "代码", "股票代码", "symbol", "f12"}

//flowScriptScraper is the last-resort concept source: it scans embedded
//script blocks for array assignments and maps record-shaped entries
//through per-field alias resolution.
type flowScriptScraper struct{}

func (s *flowScriptScraper) name() string {
	return "script scrape"
}

func (s *flowScriptScraper) fetch() (flows []*model.ConceptFlow, e error) {
	res, e := util.HTTPGet(conf.Args.DataSource.FlowRankURL, nil)
	if e != nil {
		return nil, e
	}
	defer res.Body.Close()
	doc, e := newDocument(res)
	if e != nil {
		return nil, e
	}
	return parseFlowScripts(doc)
}

func parseFlowScripts(doc *goquery.Document) (flows []*model.ConceptFlow, e error) {
	for _, arr := range scriptArrays(doc) {
		if !isRecordArray(arr) {
			continue
		}
		arr.ForEach(func(_, item gjson.Result) bool {
			if c := conceptFromAliases(item); c != nil {
				flows = append(flows, c)
			}
			return true
		})
		if len(flows) > 0 {
			break
		}
	}
	if len(flows) == 0 {
		return nil, errors.New("no record-shaped script data in document")
	}
	if top := conf.Args.DataSource.TopConcepts; top > 0 && len(flows) > top {
		flows = flows[:top]
	}
	return
}

//scriptArrays captures every JSON-decodable array assigned to a
//data-like variable in the document's script blocks.
func scriptArrays(doc *goquery.Document) (arrays []gjson.Result) {
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		text := s.Text()
		if !strings.Contains(text, "data") && !strings.Contains(text, "pool") &&
			!strings.Contains(text, "list") {
			return
		}
		for _, p := range scriptArrayPatterns {
			for _, m := range p.FindAllStringSubmatch(text, -1) {
				if !gjson.Valid(m[1]) {
					continue
				}
				if arr := gjson.Parse(m[1]); arr.IsArray() {
					arrays = append(arrays, arr)
				}
			}
		}
	})
	return
}

//isRecordArray reports whether the array looks like a list of
//record-shaped objects, judged by id-like keys on the first element.
func isRecordArray(arr gjson.Result) bool {
	items := arr.Array()
	if len(items) == 0 || !items[0].IsObject() {
		return false
	}
	for _, k := range recordIDKeys {
		if items[0].Get(k).Exists() {
			return true
		}
	}
	return false
}

//firstAlias returns the first present alias value on the item.
func firstAlias(item gjson.Result, aliases ...string) gjson.Result {
	for _, a := range aliases {
		if v := item.Get(a); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

//conceptFromAliases maps one script record to a canonical concept,
//trying several alias names per field and defaulting to empty/zero.
func conceptFromAliases(item gjson.Result) *model.ConceptFlow {
	name := strings.TrimSpace(firstAlias(item, "name", "名称", "板块名称", "n", "f14").String())
	if name == "" || headerLabels[name] {
		return nil
	}
	_, ts := util.TimeStr()
	return &model.ConceptFlow{
		Code:             firstAlias(item, "code", "codes", "代码", "symbol", "f12").String(),
		Name:             name,
		Price:            util.Str2F64(firstAlias(item, "price", "最新价", "p", "f2").String()),
		ChangeRate:       util.Pct2F64(firstAlias(item, "change_rate", "涨跌幅", "zdp", "f3").String()),
		MainInflow:       util.Amt2F64(firstAlias(item, "main_inflow", "主力净流入", "f62").String()),
		SuperLargeInflow: util.Amt2F64(firstAlias(item, "super_large_inflow", "超大单净流入", "f66").String()),
		LargeInflow:      util.Amt2F64(firstAlias(item, "large_inflow", "大单净流入", "f72").String()),
		MediumInflow:     util.Amt2F64(firstAlias(item, "medium_inflow", "中单净流入", "f78").String()),
		SmallInflow:      util.Amt2F64(firstAlias(item, "small_inflow", "小单净流入", "f84").String()),
		LeadStock:        firstAlias(item, "max_stock", "最大股", "f204").String(),
		Timestamp:        ts,
	}
}
